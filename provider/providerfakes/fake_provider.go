package providerfakes

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-tasklist-client/provider"
)

var _ provider.Provider = (*FakeProvider)(nil)

// FakeProvider is a scriptable identity provider for tests.
type FakeProvider struct {
	lock sync.Mutex

	Identity        *provider.Identity
	ConfigureErr    error
	AvailabilityErr error
	SignInErr       error
	SignOutErr      error

	ConfigureCalls int
	SignInCalls    int
	SignOutCalls   int
	LastConfig     provider.Config
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{}
}

func (fp *FakeProvider) Configure(cfg provider.Config) error {
	fp.lock.Lock()
	defer fp.lock.Unlock()

	fp.ConfigureCalls++
	fp.LastConfig = cfg
	return fp.ConfigureErr
}

func (fp *FakeProvider) CheckAvailability(_ context.Context) error {
	fp.lock.Lock()
	defer fp.lock.Unlock()

	return fp.AvailabilityErr
}

func (fp *FakeProvider) SignIn(_ context.Context) (*provider.Identity, error) {
	fp.lock.Lock()
	defer fp.lock.Unlock()

	fp.SignInCalls++
	if fp.SignInErr != nil {
		return nil, fp.SignInErr
	}
	return fp.Identity, nil
}

func (fp *FakeProvider) SignOut(_ context.Context) error {
	fp.lock.Lock()
	defer fp.lock.Unlock()

	fp.SignOutCalls++
	return fp.SignOutErr
}
