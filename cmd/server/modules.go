package main

import (
	"github.com/JaimeStill/lang-portal/web/app"
)

// Modules holds the mounted application modules.
type Modules struct {
	App *app.App
}

// NewModules builds every module against the shared runtime.
func NewModules(runtime *Runtime) (*Modules, error) {
	appModule, err := app.New(
		runtime.Logger.With("module", "app"),
		runtime.Client,
		runtime.Metrics,
	)
	if err != nil {
		return nil, err
	}

	return &Modules{App: appModule}, nil
}
