package presenters

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all presenter providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewConsolePresenter); err != nil {
		return err
	}

	return nil
}
