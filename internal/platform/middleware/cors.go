// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/taibuivan/stockroom/internal/platform/constants"
)

// # Cross-Origin Resource Sharing

// AppConfig is the configuration the CORS middleware reads.
type AppConfig interface {
	IsDevelopment() bool

	// AllowedOrigins lists exact origins accepted in addition to the product domain.
	AllowedOrigins() []string
}

var (
	corsAllowMethods  = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	corsAllowHeaders  = strings.Join([]string{"Accept", constants.HeaderContentType, constants.HeaderAuthorization, constants.HeaderXRequestID}, ", ")
	corsExposeHeaders = strings.Join([]string{
		constants.HeaderXRequestID,
		constants.HeaderTokenExpiringSoon,
		constants.HeaderTokenExpiresIn,
		constants.HeaderRetryAfter,
	}, ", ")
)

/*
CORS answers cross-origin requests from allowed origins.

Description: Development accepts any origin. Otherwise an origin is
allowed when its host is constants.CORSAllowedDomain or a
subdomain of it, or when it appears verbatim in cfg.AllowedOrigins.
Preflight requests end here with 204 whether or not the origin is allowed;
browsers enforce the missing headers.
*/
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	extra := cfg.AllowedOrigins()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			header := writer.Header()
			header.Add("Vary", constants.HeaderOrigin)

			if cfg.IsDevelopment() || slices.Contains(extra, origin) || trustedOrigin(origin) {
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", corsAllowMethods)
				header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
				header.Set("Access-Control-Expose-Headers", corsExposeHeaders)
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Set("Access-Control-Max-Age", "300")
			}

			if request.Method == http.MethodOptions && request.Header.Get("Access-Control-Request-Method") != "" {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// trustedOrigin matches the origin host against the product domain on a label boundary,
// so "evilstockroom.app" is rejected while "admin.stockroom.app" is accepted.
func trustedOrigin(origin string) bool {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	domain := constants.CORSAllowedDomain
	return host == domain || strings.HasSuffix(host, "."+domain)
}
