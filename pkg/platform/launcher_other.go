//go:build !linux && !darwin

package platform

func plLauncher(LauncherConfig, string) (launcherFile, error) {
	return launcherFile{}, ErrUnsupported
}

func plRefreshLaunchers(string) {}
