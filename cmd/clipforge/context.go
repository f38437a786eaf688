package main

import (
	"strings"
	"sync"

	"clipforge/internal/client"
	"clipforge/internal/config"
)

type commandContext struct {
	addressFlag *string
	configFlag  *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(addressFlag, configFlag *string) *commandContext {
	return &commandContext{
		addressFlag: addressFlag,
		configFlag:  configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) apiClient() *client.Client {
	if c.addressFlag != nil && strings.TrimSpace(*c.addressFlag) != "" {
		return client.New(*c.addressFlag)
	}
	cfg, err := c.ensureConfig()
	if err != nil || cfg == nil {
		defaults := config.Default()
		return client.New(defaults.Paths.APIBind)
	}
	return client.New(cfg.Paths.APIBind)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
