// Package file provides the TOML-backed driven.ConfigStore.
//
// Settings live in config.toml inside the docdesk config directory
// (~/.docdesk by default, or $DOCDESK_CONFIG_DIR). Keys are addressed with
// dots, so "server.url" is the url key of the [server] table.
package file
