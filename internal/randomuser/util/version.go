package util

import (
	goversion "github.com/caarlos0/go-version"
)

const (
	AppName        = "randomusers"
	AppDescription = "Stores and browses people fetched from randomuser.me"
	AppWebSite     = "https://randomuser.me"
)

// BuildVersion merges ldflags-injected build values into the module build info.
func BuildVersion(version, commit, date, builtBy, treeState string) goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(AppName, AppDescription, AppWebSite),
		func(i *goversion.Info) {
			if commit != "" {
				i.GitCommit = commit
			}
			if version != "" {
				i.GitVersion = version
			}
			if treeState != "" {
				i.GitTreeState = treeState
			}
			if date != "" {
				i.BuildDate = date
			}
			if builtBy != "" {
				i.BuiltBy = builtBy
			}
		},
	)
}
