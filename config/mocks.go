package config

import (
	"time"

	"github.com/joblyhq/jobly-api/log"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// TestSecretKey is the signing key returned by the default ConfigMock.
const TestSecretKey = "secret-dev"

type ConfigMock struct {
	mock.Mock
}

func NewConfigMock() *ConfigMock {
	return &ConfigMock{}
}

func (o *ConfigMock) Default() *ConfigMock {
	o.On("SecretKey").Return([]byte(TestSecretKey))
	o.On("TokenTTL").Return(time.Duration(0))
	o.On("BcryptCost").Return(4)
	o.On("Naming").Return(NewDefaultNaming())
	o.On("Logger").Return(log.NewZapLogger(zap.NewExample()))
	return o
}

func (o *ConfigMock) SecretKey() []byte {
	args := o.Called()
	return args.Get(0).([]byte)
}

func (o *ConfigMock) TokenTTL() time.Duration {
	args := o.Called()
	return args.Get(0).(time.Duration)
}

func (o *ConfigMock) BcryptCost() int {
	args := o.Called()
	return args.Int(0)
}

func (o *ConfigMock) Naming() NamingConvention {
	args := o.Called()
	return args.Get(0).(NamingConvention)
}

func (o *ConfigMock) Logger() log.Logger {
	args := o.Called()
	return args.Get(0).(log.Logger)
}
