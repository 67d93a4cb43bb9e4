package config

import "strings"

func (c *Config) normalize() error {
	c.Convert.Format = strings.ToLower(strings.TrimSpace(c.Convert.Format))
	if c.Convert.Format == "" {
		c.Convert.Format = defaultFormat
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}

	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return err
		}
		c.Logging.File = expanded
	} else {
		c.Logging.File = ""
	}

	return nil
}
