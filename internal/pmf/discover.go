package pmf

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	pmferrors "pmfkit/internal/errors"
)

// SiteInfo describes one site found in a workbook directory.
type SiteInfo struct {
	Site      string   `json:"site"`
	Workbooks []string `json:"workbooks"`
}

// workbookSuffixes in the order the reader consults them.
var workbookSuffixes = []string{
	suffixBase,
	suffixConstrained,
	suffixBoot,
	suffixConstrainedBoot,
	suffixBaseError,
	suffixConstrError,
}

// DiscoverSites scans a directory for per-site workbook sets. A site exists
// when its base workbook <site>_base.xlsx is present; sibling workbooks with
// the other known suffixes are attributed to the same site. Sites come back
// sorted by name.
func DiscoverSites(dir string) ([]SiteInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pmferrors.NotFound(dir, "workbook directory does not exist")
		}
		return nil, pmferrors.Internal(dir, err)
	}

	names := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names[entry.Name()] = true
		}
	}

	var sites []SiteInfo
	for name := range names {
		if !strings.HasSuffix(name, suffixBase) {
			continue
		}
		site := strings.TrimSuffix(name, suffixBase)
		if site == "" {
			continue
		}
		info := SiteInfo{Site: site}
		for _, suffix := range workbookSuffixes {
			if names[site+suffix] {
				info.Workbooks = append(info.Workbooks, site+suffix)
			}
		}
		sites = append(sites, info)
	}

	sort.Slice(sites, func(i, j int) bool { return sites[i].Site < sites[j].Site })
	return sites, nil
}

// SitePath returns the path of the site's base workbook under dir.
func SitePath(dir, site string) string {
	return filepath.Join(dir, site+suffixBase)
}
