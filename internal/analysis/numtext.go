package analysis

import "strconv"

var digitWords = [10]string{"không", "một", "hai", "ba", "bốn", "năm", "sáu", "bảy", "tám", "chín"}

// NumberText spells n in Vietnamese, e.g. 21 → "hai mươi mốt".
// Values of 1000 and above fall back to digits.
func NumberText(n int) string {
	if n < 0 {
		return "âm " + NumberText(-n)
	}
	if n >= 1000 {
		return strconv.Itoa(n)
	}
	if n < 100 {
		return belowHundred(n)
	}

	text := digitWords[n/100] + " trăm"
	rest := n % 100
	switch {
	case rest == 0:
		return text
	case rest < 10:
		return text + " lẻ " + digitWords[rest]
	default:
		return text + " " + belowHundred(rest)
	}
}

func belowHundred(n int) string {
	tens, units := n/10, n%10
	switch {
	case tens == 0:
		return digitWords[units]
	case tens == 1:
		switch units {
		case 0:
			return "mười"
		case 5:
			return "mười lăm"
		default:
			return "mười " + digitWords[units]
		}
	}

	text := digitWords[tens] + " mươi"
	switch units {
	case 0:
		return text
	case 1:
		return text + " mốt"
	case 4:
		return text + " tư"
	case 5:
		return text + " lăm"
	default:
		return text + " " + digitWords[units]
	}
}

// ValueText spells a purely numeric value and returns anything else unchanged.
func ValueText(value string) string {
	n, err := strconv.Atoi(value)
	if err != nil || value == "" || value[0] == '-' || value[0] == '+' {
		return value
	}
	return NumberText(n)
}
