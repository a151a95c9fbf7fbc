package mini

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/castdeck/castdeck/color"
	"github.com/castdeck/castdeck/icon"
	"github.com/castdeck/castdeck/style"
	"github.com/castdeck/castdeck/util"
)

func title(s string) {
	fmt.Println(style.Title(s))
}

func fail(s string) {
	fmt.Println(style.Fg(color.Red)(icon.Get(icon.Fail) + " " + s))
}

func info(s string) {
	fmt.Println(style.Truncate(truncateAt)(style.Faint(s)))
}

func progress(msg string) (eraser func()) {
	return util.PrintErasable(icon.Get(icon.Progress) + " " + style.Faint(msg))
}

// menu asks the user to pick one of options and returns its position.
func menu(message string, options []string) (int, error) {
	var index int
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 12,
	}
	if err := survey.AskOne(prompt, &index); err != nil {
		return 0, err
	}
	return index, nil
}

func getInput(message, help string, validate func(string) error) (string, error) {
	var response string
	prompt := &survey.Input{Message: message, Help: help}

	opts := []survey.AskOpt{}
	if validate != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			return validate(ans.(string))
		}))
	}

	if err := survey.AskOne(prompt, &response, opts...); err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// parseClock reads "ss", "mm:ss" or "hh:mm:ss" into seconds.
func parseClock(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time")
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	var seconds float64
	for i, part := range parts {
		n, err := strconv.ParseFloat(part, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid time %q", s)
		}
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("invalid time %q: %s is out of range", s, part)
		}
		seconds = seconds*60 + n
	}
	return seconds, nil
}

// parsePercent reads a volume between 0 and 100 into a 0..1 level.
func parsePercent(s string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil || n < 0 || n > 100 {
		return 0, fmt.Errorf("enter a number between 0 and 100")
	}
	return n / 100, nil
}
