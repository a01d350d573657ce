//go:build darwin

package platform

func plLauncher(cfg LauncherConfig, home string) (launcherFile, error) {
	return launcherFile{
		Path:    PlCommandScriptPathFunc(home, cfg),
		Content: PlGenerateCommandScriptFunc(cfg),
		Mode:    0755,
	}, nil
}

func plRefreshLaunchers(string) {}
