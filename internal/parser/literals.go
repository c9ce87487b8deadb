package parser

import "strconv"

func parseIntLiteral(lexeme string) (int64, error) {
	return strconv.ParseInt(lexeme, 10, 64)
}

func parseUintLiteral(lexeme string) (uint64, error) {
	return strconv.ParseUint(lexeme, 10, 64)
}

func parseFloatLiteral(lexeme string) (float64, error) {
	return strconv.ParseFloat(lexeme, 64)
}
