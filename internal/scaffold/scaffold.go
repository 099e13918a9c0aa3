package scaffold

import "github.com/dusk-indust/frontgen/internal/errs"

// Scaffold creates every directory in dirs below the repository root.
// Directories that already exist are left alone, so running it twice is
// harmless.
func Scaffold(r *Repo, dirs []string) ([]string, error) {
	if err := r.MkdirAll("."); err != nil {
		return nil, err
	}
	created := make([]string, 0, len(dirs))
	for _, d := range dirs {
		cleaned, err := Clean(d)
		if err != nil {
			return created, errs.FileSystem("scaffold", d, err)
		}
		if err := r.MkdirAll(cleaned); err != nil {
			return created, err
		}
		created = append(created, cleaned)
	}
	return created, nil
}
