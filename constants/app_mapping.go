package constants

import (
	_ "embed"
	"errors"
	"sync"

	json "github.com/bytedance/sonic"
)

//go:embed app_aliases.json
var aliasesJSON []byte

// AppInfo describes how to start an app on each platform.
type AppInfo struct {
	Package  string   `json:"-"`
	Aliases  []string `json:"aliases"`
	Activity string   `json:"activity"`
	BundleID string   `json:"bundle_id"`
}

var (
	pkg2AppMap   map[string]AppInfo
	alias2PkgMap map[string]string
	errLoad      error
	once         = new(sync.Once)
)

// Load loads the app registry from the embedded JSON
func Load() (map[string]AppInfo, error) {
	once.Do(func() {
		pkg2AppMap = make(map[string]AppInfo)
		if err := json.Unmarshal(aliasesJSON, &pkg2AppMap); err != nil {
			errLoad = errors.Join(err, errors.New("failed to unmarshal embedded app_aliases.json"))
			return
		}

		alias2PkgMap = make(map[string]string)
		for pkg, info := range pkg2AppMap {
			info.Package = pkg
			pkg2AppMap[pkg] = info
			for _, alias := range info.Aliases {
				alias2PkgMap[alias] = pkg
			}
		}
	})
	return pkg2AppMap, errLoad
}

// GetAppByAlias returns the app registered under alias. A package name is
// accepted as its own alias.
func GetAppByAlias(alias string) (AppInfo, bool) {
	apps, err := Load()
	if err != nil {
		return AppInfo{}, false
	}
	if info, ok := apps[alias]; ok {
		return info, true
	}
	pkg, ok := alias2PkgMap[alias]
	if !ok {
		return AppInfo{}, false
	}
	return apps[pkg], true
}

// GetAliasByPackage returns the first alias for a given package name
func GetAliasByPackage(pkg string) (string, bool) {
	apps, err := Load()
	if err != nil {
		return "", false
	}
	info, ok := apps[pkg]
	if !ok || len(info.Aliases) == 0 {
		return "", false
	}
	return info.Aliases[0], true
}
