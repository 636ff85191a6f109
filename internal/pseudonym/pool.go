package pseudonym

// DefaultPool returns the built-in pseudonym pool: a fixed, ordered list
// of given names. The order is part of the output contract — entries are
// issued sequentially, so reordering the pool changes every converted
// document.
func DefaultPool() []string {
	return []string{
		"Alice", "Bob", "Carol", "David", "Erin", "Frank", "Grace", "Henry",
		"Ivy", "Jack", "Karen", "Leo", "Mallory", "Nathan", "Olivia", "Peter",
		"Quinn", "Rachel", "Sam", "Trudy", "Ursula", "Victor", "Wendy", "Xavier",
		"Yvonne", "Zach", "Abigail", "Bernard", "Clara", "Dominic", "Elena",
		"Felix", "Gloria", "Hugo", "Irene", "Jonas", "Kirsten", "Lucas",
		"Miriam", "Noel", "Oscar", "Paula", "Quentin", "Rosa", "Stefan",
		"Tamara", "Ulrik", "Vera", "Wilhelm", "Xenia", "Yannick", "Zelda",
		"Anton", "Beatrice", "Casper", "Dagmar", "Emil", "Freja", "Gustav",
		"Helena", "Ingmar", "Johanna", "Kasper", "Laura", "Magnus", "Nadia",
		"Otto", "Petra", "Rasmus", "Signe", "Thomas", "Ulla", "Valdemar",
		"Wilma", "Yasmin", "Adrian", "Birgitte", "Christian", "Dorthe",
		"Esben", "Frederikke", "Gorm", "Hanne", "Ivan", "Jytte", "Knud",
		"Lone", "Mads", "Nanna", "Ole", "Pia", "Rune", "Sofie", "Troels",
		"Ulrikke", "Vibeke", "Werner",
	}
}
