// Package file is a TOML-file implementation of the ConfigStore port.
//
// Settings live in ~/.lakeview/config.toml. Environment variables
// (LAKEVIEW_ENDPOINT, LAKEVIEW_DATASET, LAKEVIEW_TOKEN,
// LAKEVIEW_API_VERSION) override the file, and a .env file in the
// working directory is loaded into the environment first. This keeps
// tokens out of the config file for users who prefer that.
package file
