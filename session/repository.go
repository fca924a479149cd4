package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// ErrInvalidRepositoryURL is returned for URLs that are not git endpoints.
var ErrInvalidRepositoryURL = errors.New("invalid repository URL")

// ValidateRepositoryURL checks that raw looks like a remote git repository.
// Nothing is fetched.
func ValidateRepositoryURL(raw string) error {
	raw = strings.TrimSpace(raw)
	ep, err := transport.NewEndpoint(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRepositoryURL, err)
	}
	switch ep.Protocol {
	case "https", "http", "ssh", "git":
	default:
		return fmt.Errorf("%w: unsupported protocol %q", ErrInvalidRepositoryURL, ep.Protocol)
	}
	if ep.Host == "" || strings.Trim(ep.Path, "/") == "" {
		return fmt.Errorf("%w: %s has no host or path", ErrInvalidRepositoryURL, raw)
	}
	return nil
}
