package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Let's configure the interview assistant.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Backend URL.
	baseURLPrompt := promptui.Prompt{
		Label:    "Backend API base URL",
		Default:  cfg.API.BaseURL,
		Validate: validateURL,
	}
	baseURL, err := baseURLPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	cfg.API.BaseURL = strings.TrimRight(baseURL, "/")

	// 2. Static host port.
	portPrompt := promptui.Prompt{
		Label:    "Port for `interview serve`",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 3. Asset directory.
	rootPrompt := promptui.Prompt{
		Label:   "Asset directory to serve (blank for the built-in pages)",
		Default: "",
	}
	rootDir, err := rootPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("root dir: %w", err)
	}
	cfg.Server.RootDir = strings.TrimSpace(rootDir)

	// 4. Extra hidden globs.
	hiddenPrompt := promptui.Prompt{
		Label:   "Extra hidden asset patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	hiddenStr, err := hiddenPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("hidden patterns: %w", err)
	}
	if hiddenStr != "" {
		cfg.Server.Hidden = append(append([]string{}, DefaultHidden...), splitAndTrim(hiddenStr)...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	return nil
}

func validatePort(s string) error {
	port, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if port <= 0 || port > 65535 {
		return fmt.Errorf("out of range")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
