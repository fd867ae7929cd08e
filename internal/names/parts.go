package names

// Syllable tables. Repeats weight the draw toward common letters.
var vowels = []string{
	"a", "a", "a", "a",
	"e", "e", "e", "e", "e", "e",
	"i", "i", "i", "i",
	"o", "o", "o", "o",
	"u", "u",
	"y",
}

var vowelPairs = []string{
	"ae", "ai", "au",
	"ea", "eo", "eu",
	"ia", "io", "ie",
	"oa", "oi", "ou",
	"ua", "ue", "ui",
}

var consonants = []string{
	"b", "b",
	"c", "c",
	"d", "d", "d", "d",
	"f", "f",
	"g", "g",
	"h", "h", "h", "h", "h",
	"k",
	"l", "l", "l", "l",
	"m", "m",
	"n", "n", "n", "n", "n", "n", "n", "n",
	"p", "p",
	"r", "r", "r", "r", "r", "r",
	"s", "s", "s", "s", "s", "s",
	"t", "t", "t", "t", "t", "t", "t", "t", "t", "t",
	"v",
	"w", "w",
	"x",
	"y",
}

var clusters = []string{
	"bl", "cl", "fl", "gl", "pl", "sl",
	"br", "cr", "dr", "fr", "gr", "pr", "tr",
	"sc", "sk", "sm", "sn", "sp", "st", "sw",
	"dw", "tw", "str", "thr",
}

// Ethnic names always end in one of these.
var ethnicSuffixes = []string{"stan", "land", "os", "ia"}

// Settlement names are built from a prefix and a suffix word.
var settlementPrefixes = []string{
	"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
	"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
	"Old", "New", "Far", "Deep", "Long", "Broad", "Gold", "Frost",
	"Storm", "Thorn", "Elm", "Oak", "Pine", "Copper", "River",
}

var settlementSuffixes = []string{
	"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
	"stead", "wood", "field", "dale", "crest", "vale", "port",
	"town", "bury", "marsh", "well", "brook", "cliff", "moor",
	"ridge", "watch", "fall", "rest", "point", "reach", "helm",
}
