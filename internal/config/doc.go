// Package config defines application configuration and loading.
package config
