// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-accounts/models"
)

// Custom tags.
const (
	tagRole       = "role"
	tagPictureURL = "picture_url"
)

var (
	pictureURLProtocols = []string{"http", "https", "ftp"}
	topLevelDomain      = regexp.MustCompile(`^(?:[a-z]{2,}|xn[a-z0-9-]{2,})$`)

	// primitives runs the baked-in url, ip, hostname and port checks.
	primitives = validator.New()
)

// registerAccountRules registers the account-specific tags on v.
func registerAccountRules(v *validator.Validate, roles models.Roles) error {
	rules := map[string]validator.Func{
		tagRole:       roleRule(roles),
		tagPictureURL: pictureURLRule,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register validation tag %q: %w", tag, err)
		}
	}

	return nil
}

func roleRule(roles models.Roles) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return roles.Contains(models.Role(fl.Field().String()))
	}
}

// pictureURLRule wraps IsPictureURL. The empty string is accepted and means
// "no picture".
func pictureURLRule(fl validator.FieldLevel) bool {
	return IsPictureURL(fl.Field().String())
}

// IsPictureURL reports whether raw is an acceptable picture URL: an absolute
// http, https or ftp URL whose host is an IP address or a domain name with a
// top-level domain, and whose port (if any) is within 1..65535.
func IsPictureURL(raw string) bool {
	if raw == "" {
		return true
	}
	if primitives.Var(raw, "url") != nil {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || u.Opaque != "" || !isAllowedProtocol(u.Scheme) {
		return false
	}

	if port := u.Port(); port != "" {
		n, err := strconv.ParseUint(port, 10, 64)
		if err != nil || primitives.Var(n, "port") != nil {
			return false
		}
	}

	host := strings.ToLower(u.Hostname())
	if primitives.Var(host, "ip") == nil {
		return true
	}

	return isDomainWithTLD(strings.TrimSuffix(host, "."))
}

// isDomainWithTLD checks the label grammar with hostname_rfc1123 (no
// underscores, no leading hyphen) and requires an alphabetic or punycode TLD.
func isDomainWithTLD(host string) bool {
	if primitives.Var(host, "hostname_rfc1123") != nil {
		return false
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if strings.HasSuffix(label, "-") {
			return false
		}
	}

	return topLevelDomain.MatchString(labels[len(labels)-1])
}

func isAllowedProtocol(scheme string) bool {
	scheme = strings.ToLower(scheme)
	for _, p := range pictureURLProtocols {
		if scheme == p {
			return true
		}
	}
	return false
}
