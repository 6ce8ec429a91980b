package cmd

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/caverna/vbump/internal/config"
	"github.com/caverna/vbump/internal/logger"
	"github.com/caverna/vbump/internal/orchestrator"
	"github.com/caverna/vbump/internal/repository"
)

// container holds all the dependencies for the application.

type container struct {
	cfg *config.Config
	log *charmlog.Logger

	showOrch *orchestrator.ShowOrchestrator
	bumpOrch *orchestrator.BumpOrchestrator
	setOrch  *orchestrator.SetOrchestrator
}

// newContainer creates a new container with all the dependencies. The
// repository opener routes git transfer output to the logger so stdout
// stays reserved for version output.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	lg := logger.New(verbose)
	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	openRepo := orchestrator.RepoOpener(func(dir string) (repository.GitRepository, error) {
		return repository.OpenGitRepository(dir, logger.Progress(lg))
	})
	return &container{
		cfg:      cfg,
		log:      lg,
		showOrch: orchestrator.NewShowOrchestrator(fsRepo, openRepo, os.Stdout, lg),
		bumpOrch: orchestrator.NewBumpOrchestrator(fsRepo, openRepo, os.Stdout, lg),
		setOrch:  orchestrator.NewSetOrchestrator(fsRepo, openRepo, os.Stdout, lg),
	}, nil
}

// resolve returns the flag value when set, the config default otherwise.
func resolve(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
