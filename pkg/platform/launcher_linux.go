//go:build linux

package platform

import "os/exec"

func plLauncher(cfg LauncherConfig, home string) (launcherFile, error) {
	return launcherFile{
		Path:    PlDesktopEntryPathFunc(home, cfg),
		Content: PlGenerateDesktopEntryFunc(cfg),
		Mode:    0644,
	}, nil
}

// plRefreshLaunchers asks the desktop to re-read the applications directory.
// Missing tooling is fine; most desktops notice the change on their own.
func plRefreshLaunchers(dir string) {
	if path, err := exec.LookPath("update-desktop-database"); err == nil {
		_ = exec.Command(path, dir).Run()
	}
}
