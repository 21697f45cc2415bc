package convert

import (
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/diagval/internal/fixer"
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

// resolveFixLevel picks the fix level from the flag, then the config file,
// then the default.
func resolveFixLevel(options *RunOptionsConvert, cfg *config.Config) fixer.Level {
	if options.Level != "" {
		return fixer.Level(options.Level)
	}
	if cfg != nil && cfg.Validator.FixLevel != "" {
		return fixer.Level(cfg.Validator.FixLevel)
	}
	return fixer.Level(config.DefaultValidatorConfig().FixLevel)
}
