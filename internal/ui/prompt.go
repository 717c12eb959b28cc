package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// Confirm asks a yes/no question. Answering no is not an error.
func Confirm(question string) (bool, error) {
	p := promptui.Prompt{
		Label:     question,
		IsConfirm: true,
	}
	_, err := p.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirm prompt: %w", err)
	}
	return true, nil
}

// Password reads a secret without echoing it.
func Password(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Mask:  '*',
		Validate: func(s string) error {
			if s == "" {
				return errors.New("不能为空")
			}
			return nil
		},
	}
	result, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("%s prompt: %w", label, err)
	}
	return result, nil
}

// Ask reads a line. When required, empty input is refused.
func Ask(label, def string, required bool) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
	}
	if required {
		p.Validate = func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("不能为空")
			}
			return nil
		}
	}
	result, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("%s prompt: %w", label, err)
	}
	return strings.TrimSpace(result), nil
}
