package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

func GetSimpleText(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Println(prompt)
	text, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func GetPassword() ([]byte, error) {
	fmt.Println("-Passwort")
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// GetInt prompts until the user enters a valid integer.
func GetInt(reader *bufio.Reader, prompt string) (int, error) {
	text, err := GetSimpleText(reader, prompt)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("keine Zahl: %q", text)
	}
	return value, nil
}

// GetDate prompts for an ISO date (YYYY-MM-DD) and validates it.
func GetDate(reader *bufio.Reader, prompt string) (string, error) {
	text, err := GetSimpleText(reader, prompt)
	if err != nil {
		return "", err
	}
	if _, err := time.Parse("2006-01-02", text); err != nil {
		return "", fmt.Errorf("ungültiges Datum: %q (erwartet JJJJ-MM-TT)", text)
	}
	return text, nil
}
