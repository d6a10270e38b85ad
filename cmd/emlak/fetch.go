package main

import (
	"fmt"
	"net/url"

	"github.com/pelinbingl/emlak"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	for _, raw := range c.URLs {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			err := emlak.Errorf(emlak.EINVALID, "%q is not an http(s) URL", raw)
			fmt.Fprintf(deps.Stderr, "error: %s\n", emlak.ErrorMessage(err))
			return err
		}
	}
	return runBatch(deps, c.URLs)
}
