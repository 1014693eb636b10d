// Package cli implements the interactive DreamNotes command-line client.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/dreamnotes/internal/client/api"
	"github.com/dmitrijs2005/dreamnotes/internal/client/config"
)

type App struct {
	config   *config.Config
	client   api.Client
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	apiClient := api.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout)

	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.client.IsLoggedIn()
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.userName
	}
	return "not logged in"
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}
