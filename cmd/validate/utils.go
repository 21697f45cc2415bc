package validate

import (
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

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
// Flags win when set; the config file fills the rest.
func resolveValidatorOptions(options *RunOptionsValidate, cfg *config.Config) validator.Options {
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
