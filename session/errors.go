package session

import "errors"

var (
	MissingIdentityTokenErr = errors.New("no identity token received from provider")
	AuthExchangeErr         = errors.New("authentication with backend failed")
	AccountProvisioningErr  = errors.New("failed to create user account")
	ProfileFetchErr         = errors.New("failed to fetch user profile")
	SignInInProgressErr     = errors.New("sign-in already in progress, please wait")
	ServicesUnavailableErr  = errors.New("sign-in services are not available")
	SignInFailedErr         = errors.New("sign-in failed, please try again")
)
