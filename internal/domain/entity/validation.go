package entity

import (
	"fmt"
	"net"
	"net/url"
)

// maxURLLength bounds accepted URLs. Filmliste media URLs stay well below
// this; anything longer is either corrupt or hostile input.
const maxURLLength = 2048

// ValidateURL validates the format and safety of a URL.
// It checks that the URL is well-formed, uses an HTTP or HTTPS scheme, and
// has a host. Literal private IP hosts are rejected so that configured
// mirror URLs and admin-submitted entries cannot point the server at its
// own network. Catalog entries arrive half a million at a time, so no DNS
// resolution happens here.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	if ip := net.ParseIP(parsedURL.Hostname()); ip != nil && isPrivateIP(ip) {
		return &ValidationError{
			Field:   "url",
			Message: "url cannot point to private network",
		}
	}

	return nil
}

// isPrivateIP checks if an IP address is in a private or restricted range:
// loopback, link-local (including the cloud metadata endpoint), and the
// RFC 1918 private networks.
func isPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() {
		return true
	}

	if ip.IsLinkLocalUnicast() {
		return true
	}

	privateIPv4Ranges := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"169.254.0.0/16",
	}

	for _, cidr := range privateIPv4Ranges {
		_, subnet, _ := net.ParseCIDR(cidr)
		if subnet.Contains(ip) {
			return true
		}
	}

	return false
}
