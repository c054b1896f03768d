package keyboard

// Linux evdev key codes (linux/input-event-codes.h).
const (
	codeEsc        = 1
	code1          = 2
	code2          = 3
	code3          = 4
	code4          = 5
	code5          = 6
	code6          = 7
	code7          = 8
	code8          = 9
	code9          = 10
	code0          = 11
	codeMinus      = 12
	codeEqual      = 13
	codeBackspace  = 14
	codeTab        = 15
	codeQ          = 16
	codeW          = 17
	codeE          = 18
	codeR          = 19
	codeT          = 20
	codeY          = 21
	codeU          = 22
	codeI          = 23
	codeO          = 24
	codeP          = 25
	codeLeftBrace  = 26
	codeRightBrace = 27
	codeEnter      = 28
	codeLeftCtrl   = 29
	codeA          = 30
	codeS          = 31
	codeD          = 32
	codeF          = 33
	codeG          = 34
	codeH          = 35
	codeJ          = 36
	codeK          = 37
	codeL          = 38
	codeSemicolon  = 39
	codeApostrophe = 40
	codeGrave      = 41
	codeLeftShift  = 42
	codeBackslash  = 43
	codeZ          = 44
	codeX          = 45
	codeC          = 46
	codeV          = 47
	codeB          = 48
	codeN          = 49
	codeM          = 50
	codeComma      = 51
	codeDot        = 52
	codeSlash      = 53
	codeRightShift = 54
	codeKPAsterisk = 55
	codeLeftAlt    = 56
	codeSpace      = 57
	codeCapsLock   = 58
	codeF1         = 59
	codeF2         = 60
	codeF3         = 61
	codeF4         = 62
	codeF5         = 63
	codeF6         = 64
	codeF7         = 65
	codeF8         = 66
	codeF9         = 67
	codeF10        = 68
	codeNumLock    = 69
	codeScrollLock = 70
	codeKP7        = 71
	codeKP8        = 72
	codeKP9        = 73
	codeKPMinus    = 74
	codeKP4        = 75
	codeKP5        = 76
	codeKP6        = 77
	codeKPPlus     = 78
	codeKP1        = 79
	codeKP2        = 80
	codeKP3        = 81
	codeKP0        = 82
	codeKPDot      = 83
	codeF11        = 87
	codeF12        = 88
	codeKPEnter    = 96
	codeRightCtrl  = 97
	codeKPSlash    = 98
	codeSysRq      = 99
	codeRightAlt   = 100
	codeHome       = 102
	codeUp         = 103
	codePageUp     = 104
	codeLeft       = 105
	codeRight      = 106
	codeEnd        = 107
	codeDown       = 108
	codePageDown   = 109
	codeInsert     = 110
	codeDelete     = 111
	codePause      = 119
	codeLeftMeta   = 125
	codeRightMeta  = 126
	codeCompose    = 127
)

// Position marks where a key sits in its row.
type Position int

const (
	Between Position = iota
	RowStart
	RowEnd
)

type keyDef struct {
	id     string
	label  string
	code   int
	aspect float32
	pos    Position
}

// layout is a full PC keyboard with numpad, in row order.
var layout = []keyDef{
	{"esc", "Esc", codeEsc, 1, RowStart},
	{"f1", "F1", codeF1, 1, Between},
	{"f2", "F2", codeF2, 1, Between},
	{"f3", "F3", codeF3, 1, Between},
	{"f4", "F4", codeF4, 1, Between},
	{"f5", "F5", codeF5, 1, Between},
	{"f6", "F6", codeF6, 1, Between},
	{"f7", "F7", codeF7, 1, Between},
	{"f8", "F8", codeF8, 1, Between},
	{"f9", "F9", codeF9, 1, Between},
	{"f10", "F10", codeF10, 1, Between},
	{"f11", "F11", codeF11, 1, Between},
	{"f12", "F12", codeF12, 1, Between},
	{"sysrq", "SysRq", codeSysRq, 1, Between},
	{"scroll", "Scroll", codeScrollLock, 1, Between},
	{"pause", "Pause", codePause, 1, Between},
	{"insert", "Ins", codeInsert, 0.88, Between},
	{"delete", "Del", codeDelete, 0.88, Between},
	{"home", "Home", codeHome, 0.88, Between},
	{"end", "End", codeEnd, 0.88, RowEnd},

	{"grave", "`", codeGrave, 1, RowStart},
	{"1", "1", code1, 1, Between},
	{"2", "2", code2, 1, Between},
	{"3", "3", code3, 1, Between},
	{"4", "4", code4, 1, Between},
	{"5", "5", code5, 1, Between},
	{"6", "6", code6, 1, Between},
	{"7", "7", code7, 1, Between},
	{"8", "8", code8, 1, Between},
	{"9", "9", code9, 1, Between},
	{"0", "0", code0, 1, Between},
	{"minus", "-", codeMinus, 1, Between},
	{"equal", "=", codeEqual, 1, Between},
	{"back", "Back", codeBackspace, 2.5, Between},
	{"numlock", "NumLk", codeNumLock, 1, Between},
	{"kpslash", "/", codeKPSlash, 1, Between},
	{"kpasterisk", "*", codeKPAsterisk, 1, Between},
	{"kpminus", "-", codeKPMinus, 1, RowEnd},

	{"tab", "Tab", codeTab, 1.5, RowStart},
	{"q", "Q", codeQ, 1, Between},
	{"w", "W", codeW, 1, Between},
	{"e", "E", codeE, 1, Between},
	{"r", "R", codeR, 1, Between},
	{"t", "T", codeT, 1, Between},
	{"y", "Y", codeY, 1, Between},
	{"u", "U", codeU, 1, Between},
	{"i", "I", codeI, 1, Between},
	{"o", "O", codeO, 1, Between},
	{"p", "P", codeP, 1, Between},
	{"leftbrace", "[", codeLeftBrace, 1, Between},
	{"rightbrace", "]", codeRightBrace, 1, Between},
	{"backslash", "\\", codeBackslash, 2, Between},
	{"kp7", "7", codeKP7, 1, Between},
	{"kp8", "8", codeKP8, 1, Between},
	{"kp9", "9", codeKP9, 1, Between},
	{"kpplus", "+", codeKPPlus, 1, RowEnd},

	{"capslock", "Caps Lock", codeCapsLock, 2, RowStart},
	{"a", "A", codeA, 1, Between},
	{"s", "S", codeS, 1, Between},
	{"d", "D", codeD, 1, Between},
	{"f", "F", codeF, 1, Between},
	{"g", "G", codeG, 1, Between},
	{"h", "H", codeH, 1, Between},
	{"j", "J", codeJ, 1, Between},
	{"k", "K", codeK, 1, Between},
	{"l", "L", codeL, 1, Between},
	{"semicolon", ";", codeSemicolon, 1, Between},
	{"apostrophe", "'", codeApostrophe, 1, Between},
	{"return", "Return", codeEnter, 2.5, Between},
	{"kp4", "4", codeKP4, 1, Between},
	{"kp5", "5", codeKP5, 1, Between},
	{"kp6", "6", codeKP6, 1, Between},
	{"pageup", "PgUp", codePageUp, 1, RowEnd},

	{"leftshift", "Shift", codeLeftShift, 2.5, RowStart},
	{"z", "Z", codeZ, 1, Between},
	{"x", "X", codeX, 1, Between},
	{"c", "C", codeC, 1, Between},
	{"v", "V", codeV, 1, Between},
	{"b", "B", codeB, 1, Between},
	{"n", "N", codeN, 1, Between},
	{"m", "M", codeM, 1, Between},
	{"comma", ",", codeComma, 1, Between},
	{"dot", ".", codeDot, 1, Between},
	{"slash", "/", codeSlash, 1, Between},
	{"rightshift", "Shift", codeRightShift, 3, Between},
	{"kp1", "1", codeKP1, 1, Between},
	{"kp2", "2", codeKP2, 1, Between},
	{"kp3", "3", codeKP3, 1, Between},
	{"pagedown", "PgDn", codePageDown, 1, RowEnd},

	{"leftctrl", "Ctrl", codeLeftCtrl, 1, RowStart},
	{"leftmeta", "Win", codeLeftMeta, 1, Between},
	{"leftalt", "Alt", codeLeftAlt, 1, Between},
	{"space", "Space", codeSpace, 4.5, Between},
	{"rightalt", "Alt", codeRightAlt, 1, Between},
	{"rightmeta", "Win", codeRightMeta, 1, Between},
	{"menu", "Menu", codeCompose, 1, Between},
	{"rightctrl", "Ctrl", codeRightCtrl, 1, Between},
	{"up", "Up", codeUp, 1, Between},
	{"down", "Down", codeDown, 1, Between},
	{"left", "Left", codeLeft, 1, Between},
	{"right", "Right", codeRight, 1, Between},
	{"kp0", "0", codeKP0, 2, Between},
	{"kpdot", ",", codeKPDot, 1, Between},
	{"kpenter", "Enter", codeKPEnter, 1, RowEnd},
}

// wiring lists, per key, its left, right, above and below neighbors. The
// graph wraps around at the row ends and between the top and bottom rows.
var wiring = map[string][4]string{
	"esc":    {"end", "f1", "leftctrl", "grave"},
	"f1":     {"esc", "f2", "leftmeta", "1"},
	"f2":     {"f1", "f3", "leftalt", "2"},
	"f3":     {"f2", "f4", "space", "3"},
	"f4":     {"f3", "f5", "space", "4"},
	"f5":     {"f4", "f6", "space", "5"},
	"f6":     {"f5", "f7", "space", "6"},
	"f7":     {"f6", "f8", "rightalt", "7"},
	"f8":     {"f7", "f9", "rightmeta", "8"},
	"f9":     {"f8", "f10", "menu", "9"},
	"f10":    {"f9", "f11", "rightctrl", "0"},
	"f11":    {"f10", "f12", "up", "minus"},
	"f12":    {"f11", "sysrq", "down", "equal"},
	"sysrq":  {"f12", "scroll", "down", "back"},
	"scroll": {"sysrq", "pause", "left", "back"},
	"pause":  {"scroll", "insert", "right", "numlock"},
	"insert": {"pause", "delete", "kp0", "numlock"},
	"delete": {"insert", "home", "kpdot", "kpslash"},
	"home":   {"delete", "end", "kpdot", "kpasterisk"},
	"end":    {"home", "esc", "kpenter", "kpminus"},

	"grave":      {"kpminus", "1", "esc", "tab"},
	"1":          {"grave", "2", "f1", "q"},
	"2":          {"1", "3", "f2", "w"},
	"3":          {"2", "4", "f3", "e"},
	"4":          {"3", "5", "f4", "r"},
	"5":          {"4", "6", "f5", "t"},
	"6":          {"5", "7", "f6", "y"},
	"7":          {"6", "8", "f7", "u"},
	"8":          {"7", "9", "f8", "i"},
	"9":          {"8", "0", "f9", "o"},
	"0":          {"9", "minus", "f10", "p"},
	"minus":      {"0", "equal", "f11", "leftbrace"},
	"equal":      {"minus", "back", "f12", "rightbrace"},
	"back":       {"equal", "numlock", "scroll", "backslash"},
	"numlock":    {"back", "kpslash", "insert", "kp7"},
	"kpslash":    {"numlock", "kpasterisk", "delete", "kp8"},
	"kpasterisk": {"kpslash", "kpminus", "home", "kp9"},
	"kpminus":    {"kpasterisk", "grave", "end", "kpplus"},

	"tab":        {"kpplus", "q", "grave", "capslock"},
	"q":          {"tab", "w", "1", "a"},
	"w":          {"q", "e", "2", "a"},
	"e":          {"w", "r", "3", "s"},
	"r":          {"e", "t", "4", "d"},
	"t":          {"r", "y", "5", "f"},
	"y":          {"t", "u", "6", "g"},
	"u":          {"y", "i", "7", "h"},
	"i":          {"u", "o", "8", "j"},
	"o":          {"i", "p", "9", "k"},
	"p":          {"o", "leftbrace", "0", "l"},
	"leftbrace":  {"p", "rightbrace", "minus", "semicolon"},
	"rightbrace": {"leftbrace", "backslash", "equal", "apostrophe"},
	"backslash":  {"rightbrace", "kp7", "back", "return"},
	"kp7":        {"backslash", "kp8", "numlock", "kp4"},
	"kp8":        {"kp7", "kp9", "kpslash", "kp5"},
	"kp9":        {"kp8", "kpplus", "kpasterisk", "kp6"},
	"kpplus":     {"kp9", "tab", "kpminus", "pageup"},

	"capslock":   {"pageup", "a", "tab", "leftshift"},
	"a":          {"capslock", "s", "w", "z"},
	"s":          {"a", "d", "e", "x"},
	"d":          {"s", "f", "r", "c"},
	"f":          {"d", "g", "t", "v"},
	"g":          {"f", "h", "y", "b"},
	"h":          {"g", "j", "u", "n"},
	"j":          {"h", "k", "i", "m"},
	"k":          {"j", "l", "i", "comma"},
	"l":          {"k", "semicolon", "p", "dot"},
	"semicolon":  {"l", "apostrophe", "leftbrace", "slash"},
	"apostrophe": {"semicolon", "return", "rightbrace", "slash"},
	"return":     {"apostrophe", "kp4", "backslash", "rightshift"},
	"kp4":        {"return", "kp5", "kp7", "kp1"},
	"kp5":        {"kp4", "kp6", "kp8", "kp2"},
	"kp6":        {"kp5", "pageup", "kp9", "kp3"},
	"pageup":     {"kp6", "capslock", "kpplus", "pagedown"},

	"leftshift":  {"pagedown", "z", "capslock", "leftmeta"},
	"z":          {"leftshift", "x", "a", "leftalt"},
	"x":          {"z", "c", "s", "space"},
	"c":          {"x", "v", "d", "space"},
	"v":          {"c", "b", "f", "space"},
	"b":          {"v", "n", "g", "space"},
	"n":          {"b", "m", "h", "rightalt"},
	"m":          {"n", "comma", "j", "rightmeta"},
	"comma":      {"m", "dot", "k", "menu"},
	"dot":        {"comma", "slash", "l", "rightctrl"},
	"slash":      {"dot", "rightshift", "semicolon", "up"},
	"rightshift": {"slash", "kp1", "return", "left"},
	"kp1":        {"rightshift", "kp2", "kp4", "kp0"},
	"kp2":        {"kp1", "kp3", "kp5", "kp0"},
	"kp3":        {"kp2", "pagedown", "kp6", "kpdot"},
	"pagedown":   {"kp3", "leftshift", "pageup", "kpenter"},

	"leftctrl":  {"kpenter", "leftmeta", "leftshift", "esc"},
	"leftmeta":  {"leftctrl", "leftalt", "leftshift", "f1"},
	"leftalt":   {"leftmeta", "space", "z", "f2"},
	"space":     {"leftalt", "rightalt", "c", "f5"},
	"rightalt":  {"space", "rightmeta", "n", "f7"},
	"rightmeta": {"rightalt", "menu", "m", "f8"},
	"menu":      {"rightmeta", "rightctrl", "comma", "f9"},
	"rightctrl": {"menu", "up", "dot", "f10"},
	"up":        {"rightctrl", "down", "slash", "f11"},
	"down":      {"up", "left", "rightshift", "f12"},
	"left":      {"down", "right", "rightshift", "sysrq"},
	"right":     {"left", "kp0", "rightshift", "scroll"},
	"kp0":       {"right", "kpdot", "kp2", "insert"},
	"kpdot":     {"kp0", "kpenter", "kp3", "home"},
	"kpenter":   {"kpdot", "leftctrl", "pagedown", "end"},
}

var lockCodes = map[int]bool{
	codeCapsLock:   true,
	codeNumLock:    true,
	codeScrollLock: true,
}
