package fix

import (
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/diagval/internal/fixer"
	"github.com/scan-io-git/diagval/internal/validator"
	"github.com/scan-io-git/diagval/pkg/shared/config"
	"github.com/scan-io-git/diagval/pkg/shared/files"
	"github.com/scan-io-git/diagval/pkg/shared/httpclient"
)

// loadDocument reads and decodes the input document from a file, stdin, or a URL.
func loadDocument(input string, logger hclog.Logger) (interface{}, error) {
	var client *resty.Client
	if files.IsURL(input) {
		client = httpclient.InitializeRestyClient(logger, AppConfig)
	}
	raw, err := files.ReadInput(input, client)
	if err != nil {
		return nil, err
	}
	return files.DecodeJSON(raw)
}

// resolveValidatorOptions combines command flags with config file defaults.
func resolveValidatorOptions(options *RunOptionsFix, cfg *config.Config) validator.Options {
	resolved := validator.Options{
		StrictMode:       options.StrictMode,
		AllowExtraFields: options.AllowExtraFields,
	}
	if cfg == nil {
		return resolved
	}
	if !resolved.StrictMode {
		resolved.StrictMode = config.GetBoolValue(cfg, "Validator.StrictMode", false)
	}
	if !resolved.AllowExtraFields {
		resolved.AllowExtraFields = config.GetBoolValue(cfg, "Validator.AllowExtraFields", false)
	}
	return resolved
}

// resolveFixLevel picks the fix level from the flag, then the config file,
// then the default.
func resolveFixLevel(options *RunOptionsFix, cfg *config.Config) fixer.Level {
	if options.Level != "" {
		return fixer.Level(options.Level)
	}
	if cfg != nil && cfg.Validator.FixLevel != "" {
		return fixer.Level(cfg.Validator.FixLevel)
	}
	return fixer.Level(config.DefaultValidatorConfig().FixLevel)
}
