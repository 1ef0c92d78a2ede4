// Package braille transliterates status messages into uncontracted braille cells.
package braille

import "strings"

const (
	Blank      = "⠀"
	NumberSign = "⠼"
)

var letters = map[rune]string{
	'a': "⠁", 'b': "⠃", 'c': "⠉", 'd': "⠙", 'e': "⠑", 'f': "⠋", 'g': "⠛", 'h': "⠓",
	'i': "⠊", 'j': "⠚", 'k': "⠅", 'l': "⠇", 'm': "⠍", 'n': "⠝", 'o': "⠕", 'p': "⠏",
	'q': "⠟", 'r': "⠗", 's': "⠎", 't': "⠞", 'u': "⠥", 'v': "⠧", 'w': "⠺", 'x': "⠭",
	'y': "⠽", 'z': "⠵",
	'.': "⠲", ',': "⠂", '!': "⠖", '?': "⠦", '-': "⠤",
}

// digits reuse the cells of a-j behind the number sign
var digits = map[rune]rune{
	'1': 'a', '2': 'b', '3': 'c', '4': 'd', '5': 'e',
	'6': 'f', '7': 'g', '8': 'h', '9': 'i', '0': 'j',
}

// words the navigator says most often
var words = map[string]string{
	"obstacle": "⠕⠃⠎⠞⠁⠉⠇⠑",
	"clear":    "⠉⠇⠑⠁⠗",
	"path":     "⠏⠁⠞⠓",
	"warning":  "⠺⠁⠗⠝⠊⠝⠛",
	"ahead":    "⠁⠓⠑⠁⠙",
	"left":     "⠇⠑⠋⠞",
	"right":    "⠗⠊⠛⠓⠞",
	"front":    "⠋⠗⠕⠝⠞",
}

// Encode lowercases text and translates it word by word. Characters without a
// cell are kept as they are.
func Encode(text string) string {
	split := strings.Split(strings.ToLower(text), " ")
	out := make([]string, 0, len(split))
	for _, w := range split {
		if cells, ok := words[w]; ok {
			out = append(out, cells)
			continue
		}
		out = append(out, encodeWord(w))
	}
	return strings.Join(out, Blank)
}

func encodeWord(w string) string {
	var b strings.Builder
	for _, r := range w {
		if l, ok := digits[r]; ok {
			b.WriteString(NumberSign)
			b.WriteString(letters[l])
			continue
		}
		if cell, ok := letters[r]; ok {
			b.WriteString(cell)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Dots reports the raised dots of a braille pattern cell, index 0 being dot 1.
// Dots 1-3 run down the left column, 4-6 down the right and 7-8 sit below.
func Dots(r rune) (dots [8]bool, ok bool) {
	if r < 0x2800 || r > 0x28FF {
		return dots, false
	}
	bits := r - 0x2800
	for i := range dots {
		dots[i] = bits&(1<<uint(i)) != 0
	}
	return dots, true
}
