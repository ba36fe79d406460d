package serverselect

import (
	"fmt"
	"net/url"

	"github.com/manifoldco/promptui"

	"github.com/stellar-burgers/burgerctl/internal/cli/config"
	"github.com/stellar-burgers/burgerctl/internal/cli/userconfig"
	"github.com/stellar-burgers/burgerctl/internal/logger"
)

// prompt is swapped in tests
var prompt = PromptServerSelection

// ResolveServer determines which server to use based on the following priority:
// 1. If the --server flag is provided, use that server (alias or URL)
// 2. If BURGERCTL_API_URL is set, use it
// 3. If user has a selected server in their local config, use that
// 4. If only one server in project config, use that
// 5. Otherwise, prompt user to select a server interactively
func ResolveServer(projectConfig *config.Config, serverFlag, envURL string) (*config.Server, error) {
	// Priority 1: --server flag
	if serverFlag != "" {
		server, err := projectConfig.GetServerByURLOrAlias(serverFlag)
		if err == nil {
			return server, nil
		}
		if isURL(serverFlag) {
			return &config.Server{URL: serverFlag}, nil
		}
		return nil, err
	}

	// Priority 2: environment override
	if envURL != "" {
		if !isURL(envURL) {
			return nil, fmt.Errorf("BURGERCTL_API_URL '%s' is not a valid http(s) URL", envURL)
		}
		if server, err := projectConfig.GetServerByURLOrAlias(envURL); err == nil {
			return server, nil
		}
		return &config.Server{Alias: "env", URL: envURL}, nil
	}

	// Priority 3: Use selected server from user config
	selectedURL, err := userconfig.GetSelectedServer()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if selectedURL != "" {
		server, err := projectConfig.GetServerByURLOrAlias(selectedURL)
		if err != nil {
			// Selected server no longer exists in project config, clear it and continue
			_ = userconfig.SetSelectedServer("")
		} else {
			return server, nil
		}
	}

	// Priority 4: If only one server, use it automatically
	if len(projectConfig.Servers) == 1 {
		server := &projectConfig.Servers[0]
		saveSelection(server)
		return server, nil
	}

	// Priority 5: Prompt user to select a server
	server, err := prompt(projectConfig)
	if err != nil {
		return nil, err
	}

	saveSelection(server)
	return server, nil
}

func saveSelection(server *config.Server) {
	if err := userconfig.SetSelectedServer(server.URL); err != nil {
		// Don't fail if we can't save, just continue
		logger.Logger.Warn().Err(err).Msg("Failed to save selected server")
	}
}

// PromptServerSelection shows an interactive prompt for the user to select a server
func PromptServerSelection(projectConfig *config.Config) (*config.Server, error) {
	if len(projectConfig.Servers) == 0 {
		return nil, fmt.Errorf("no servers configured in %s", config.ConfigFileName)
	}

	type serverOption struct {
		Label  string
		Server *config.Server
	}

	options := make([]serverOption, len(projectConfig.Servers))
	for i := range projectConfig.Servers {
		server := &projectConfig.Servers[i]
		options[i] = serverOption{
			Label:  Label(server),
			Server: server,
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	selectPrompt := promptui.Select{
		Label:     "Select a server",
		Items:     options,
		Templates: templates,
		Size:      10,
	}

	index, _, err := selectPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server selection cancelled: %w", err)
	}

	return options[index].Server, nil
}

// Label renders a server as "alias (url)" or just the URL
func Label(server *config.Server) string {
	if server.Alias == "" {
		return server.URL
	}
	return fmt.Sprintf("%s (%s)", server.Alias, server.URL)
}

func isURL(value string) bool {
	u, err := url.Parse(value)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
