package vnenc

// Code points below are listed in the same order in every table: the
// lower-case block, then the upper-case block.

// unicodeLetters holds the composed Vietnamese letters.
var unicodeLetters = []rune(
	"áàảãạăắằẳẵặâấầẩẫậéèẻẽẹêếềểễệíìỉĩịóòỏõọôốồổỗộơớờởỡợúùủũụưứừửữựýỳỷỹỵđ" +
		"ÁÀẢÃẠĂẮẰẲẴẶÂẤẦẨẪẬÉÈẺẼẸÊẾỀỂỄỆÍÌỈĨỊÓÒỎÕỌÔỐỒỔỖỘƠỚỜỞỠỢÚÙỦŨỤƯỨỪỬỮỰÝỲỶỸỴĐ")

// vniSequences are the VNI spellings of unicodeLetters.
var vniSequences = []string{
	"a\u00D9", "a\u00D8", "a\u00DB", "a\u00D5", "a\u00CF",
	"\u00E6", "\u00E6\u00D9", "\u00E6\u00D8", "\u00E6\u00DB", "\u00E6\u00D5", "\u00E6\u00CF",
	"\u00E2", "\u00E2\u00D9", "\u00E2\u00D8", "\u00E2\u00DB", "\u00E2\u00D5", "\u00E2\u00CF",
	"e\u00D9", "e\u00D8", "e\u00DB", "e\u00D5", "e\u00CF",
	"\u00EA", "\u00EA\u00D9", "\u00EA\u00D8", "\u00EA\u00DB", "\u00EA\u00D5", "\u00EA\u00CF",
	"i\u00D9", "i\u00D8", "i\u00DB", "i\u00D5", "i\u00CF",
	"o\u00D9", "o\u00D8", "o\u00DB", "o\u00D5", "o\u00CF",
	"\u00F4", "\u00F4\u00D9", "\u00F4\u00D8", "\u00F4\u00DB", "\u00F4\u00D5", "\u00F4\u00CF",
	"\u00F6", "\u00F6\u00D9", "\u00F6\u00D8", "\u00F6\u00DB", "\u00F6\u00D5", "\u00F6\u00CF",
	"u\u00D9", "u\u00D8", "u\u00DB", "u\u00D5", "u\u00CF",
	"\u00F9", "\u00F9\u00D9", "\u00F9\u00D8", "\u00F9\u00DB", "\u00F9\u00D5", "\u00F9\u00CF",
	"y\u00D9", "y\u00D8", "y\u00DB", "y\u00D5", "\u00EE", "d\u00F1",
	"A\u00D9", "A\u00D8", "A\u00DB", "A\u00D5", "A\u00CF",
	"\u00A1", "\u00A1\u00D9", "\u00A1\u00D8", "\u00A1\u00DB", "\u00A1\u00D5", "\u00A1\u00CF",
	"\u00A2", "\u00A2\u00D9", "\u00A2\u00D8", "\u00A2\u00DB", "\u00A2\u00D5", "\u00A2\u00CF",
	"E\u00D9", "E\u00D8", "E\u00DB", "E\u00D5", "E\u00CF",
	"\u00A3", "\u00A3\u00D9", "\u00A3\u00D8", "\u00A3\u00DB", "\u00A3\u00D5", "\u00A3\u00CF",
	"I\u00D9", "I\u00D8", "I\u00DB", "I\u00D5", "I\u00CF",
	"O\u00D9", "O\u00D8", "O\u00DB", "O\u00D5", "O\u00CF",
	"\u00A4", "\u00A4\u00D9", "\u00A4\u00D8", "\u00A4\u00DB", "\u00A4\u00D5", "\u00A4\u00CF",
	"\u00A5", "\u00A5\u00D9", "\u00A5\u00D8", "\u00A5\u00DB", "\u00A5\u00D5", "\u00A5\u00CF",
	"U\u00D9", "U\u00D8", "U\u00DB", "U\u00D5", "U\u00CF",
	"\u00A6", "\u00A6\u00D9", "\u00A6\u00D8", "\u00A6\u00DB", "\u00A6\u00D5", "\u00A6\u00CF",
	"Y\u00D9", "Y\u00D8", "Y\u00DB", "Y\u00D5", "\u00A7", "D\u00D1",
}

// tcvnRunes are the TCVN3 code points of unicodeLetters. Toned upper-case
// letters share the lower-case code points.
var tcvnRunes = []rune{
	'\u00B8', '\u00B5', '\u00B6', '\u00B7', '\u00B9',
	'\u00A8', '\u00BE', '\u00BB', '\u00BC', '\u00BD', '\u00C6',
	'\u00A9', '\u00CA', '\u00C7', '\u00C8', '\u00C9', '\u00CB',
	'\u00D0', '\u00CC', '\u00CE', '\u00CF', '\u00D1',
	'\u00AA', '\u00D5', '\u00D2', '\u00D3', '\u00D4', '\u00D6',
	'\u00DD', '\u00D7', '\u00D8', '\u00DC', '\u00DE',
	'\u00E3', '\u00DF', '\u00E1', '\u00E2', '\u00E4',
	'\u00AB', '\u00E8', '\u00E5', '\u00E6', '\u00E7', '\u00E9',
	'\u00AC', '\u00ED', '\u00EA', '\u00EB', '\u00EC', '\u00EE',
	'\u00F3', '\u00EF', '\u00F1', '\u00F2', '\u00F4',
	'\u00AD', '\u00F8', '\u00F5', '\u00F6', '\u00F7', '\u00F9',
	'\u00FD', '\u00FA', '\u00FB', '\u00FC', '\u00FE', '\u00AE',
	'\u00B8', '\u00B5', '\u00B6', '\u00B7', '\u00B9',
	'\u00A1', '\u00BE', '\u00BB', '\u00BC', '\u00BD', '\u00C6',
	'\u00A2', '\u00CA', '\u00C7', '\u00C8', '\u00C9', '\u00CB',
	'\u00D0', '\u00CC', '\u00CE', '\u00CF', '\u00D1',
	'\u00A3', '\u00D5', '\u00D2', '\u00D3', '\u00D4', '\u00D6',
	'\u00DD', '\u00D7', '\u00D8', '\u00DC', '\u00DE',
	'\u00E3', '\u00DF', '\u00E1', '\u00E2', '\u00E4',
	'\u00A4', '\u00E8', '\u00E5', '\u00E6', '\u00E7', '\u00E9',
	'\u00A5', '\u00ED', '\u00EA', '\u00EB', '\u00EC', '\u00EE',
	'\u00F3', '\u00EF', '\u00F1', '\u00F2', '\u00F4',
	'\u00A6', '\u00F8', '\u00F5', '\u00F6', '\u00F7', '\u00F9',
	'\u00FD', '\u00FA', '\u00FB', '\u00FC', '\u00FE', '\u00A7',
}
