package adapter

import (
	"path/filepath"
	"testing"

	m "github.com/simondoesstuff/python-case/internal/model"
)

func TestLocalModuleResolver_Stdlib(t *testing.T) {
	resolver := NewLocalModuleResolver("")

	for _, name := range []string{"os", "sys", "json", "collections", "typing"} {
		if !resolver.IsExternal(name) {
			t.Errorf("expected stdlib module %q external", name)
		}
	}
}

func TestLocalModuleResolver_CommonThirdParty(t *testing.T) {
	resolver := NewLocalModuleResolver("")

	for _, name := range []string{"numpy", "torch", "requests", "pandas"} {
		if !resolver.IsExternal(name) {
			t.Errorf("expected well-known package %q external", name)
		}
	}
}

func TestLocalModuleResolver_ConfiguredExternals(t *testing.T) {
	resolver := NewLocalModuleResolver("", WithExternalModules([]string{"companySdk"}))

	if !resolver.IsExternal("companySdk") {
		t.Errorf("expected configured module external")
	}
}

func TestLocalModuleResolver_ProjectLocalModule(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "myUtils.py"), "x = 1\n")
	writeTestFile(t, filepath.Join(root, "myPackage", "__init__.py"), "")

	resolver := NewLocalModuleResolver(m.Path(root))

	if resolver.IsExternal("myUtils") {
		t.Errorf("expected project-local single-file module internal")
	}

	if resolver.IsExternal("myPackage") {
		t.Errorf("expected project-local package internal")
	}
}

func TestLocalModuleResolver_SitePackagesProbe(t *testing.T) {
	site := t.TempDir()
	writeTestFile(t, filepath.Join(site, "installedPkg", "__init__.py"), "")

	resolver := NewLocalModuleResolver("", WithSitePackages([]string{site}))

	if !resolver.IsExternal("installedPkg") {
		t.Errorf("expected module found in site-packages external")
	}
}

func TestLocalModuleResolver_AmbiguousDefaultsInternal(t *testing.T) {
	resolver := NewLocalModuleResolver(m.Path(t.TempDir()))

	if resolver.IsExternal("someUnknownModule") {
		t.Errorf("expected unknown module to default to internal")
	}

	if resolver.IsExternal("") {
		t.Errorf("empty name is never external")
	}
}
