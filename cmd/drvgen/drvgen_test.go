package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindUserConfig(t *testing.T) {
	t.Setenv("DRVGEN_CONFIG", "")
	assert.Equal(t, "a.yaml", findUserConfig([]string{"generate", "--config=a.yaml", "conf.yaml"}))
	assert.Equal(t, "b.toml", findUserConfig([]string{"--config", "b.toml", "check", "conf.yaml"}))
	assert.Equal(t, "", findUserConfig([]string{"check", "conf.yaml", "--config"}))

	t.Setenv("DRVGEN_CONFIG", "env.json")
	assert.Equal(t, "env.json", findUserConfig([]string{"check", "conf.yaml"}))
}
