package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confkit/confkit/pkg/errors"
)

type echoHelper struct {
	args map[string]interface{}
}

func TestGetHelper(t *testing.T) {
	cfg := newINIConfig(t, sampleINI)
	require.NoError(t, cfg.RegisterHelper("echoHelper", func(args map[string]interface{}) (interface{}, error) {
		return &echoHelper{args: args}, nil
	}))

	got := cfg.GetHelper("DICT_METHOD_HELPER_MODULE",
		map[string]interface{}{"depth": 2}, InSection("Section1"))
	helper, ok := got.(*echoHelper)
	require.True(t, ok)
	assert.Equal(t, 2, helper.args["depth"])
}

func TestGetHelperMissingOption(t *testing.T) {
	cfg := newINIConfig(t, sampleINI)

	assert.Nil(t, cfg.GetHelper("NO_SUCH_OPTION", nil))
}

func TestGetHelperUnregisteredKey(t *testing.T) {
	cfg := newINIConfig(t, sampleINI)

	// The option resolves to echoHelper but nothing is registered there.
	assert.Nil(t, cfg.GetHelper("DICT_METHOD_HELPER_MODULE", nil, InSection("Section1")))
}

func TestGetHelperConstructorFailure(t *testing.T) {
	cfg := newINIConfig(t, sampleINI)
	require.NoError(t, cfg.RegisterHelper("echoHelper", func(args map[string]interface{}) (interface{}, error) {
		return nil, errors.New(errors.ErrInternal, "cannot construct")
	}))

	assert.Nil(t, cfg.GetHelper("DICT_METHOD_HELPER_MODULE", nil, InSection("Section1")))
}

func TestRegisterHelperDuplicate(t *testing.T) {
	cfg := newINIConfig(t, sampleINI)
	ctor := func(args map[string]interface{}) (interface{}, error) { return nil, nil }

	require.NoError(t, cfg.RegisterHelper("dup", ctor))
	err := cfg.RegisterHelper("dup", ctor)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}
