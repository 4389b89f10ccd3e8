package adapter

import (
	"log/slog"
	"os"
	"path/filepath"

	m "github.com/simondoesstuff/python-case/internal/model"
)

// pythonStdlib lists the standard-library root modules of recent CPython
// releases. Static rather than probed: the tool runs without a Python
// interpreter on the host.
var pythonStdlib = map[string]struct{}{
	"abc": {}, "argparse": {}, "array": {}, "ast": {}, "asyncio": {},
	"atexit": {}, "base64": {}, "bisect": {}, "builtins": {}, "bz2": {},
	"calendar": {}, "collections": {}, "concurrent": {}, "configparser": {},
	"contextlib": {}, "copy": {}, "csv": {}, "ctypes": {}, "dataclasses": {},
	"datetime": {}, "decimal": {}, "difflib": {}, "dis": {}, "enum": {},
	"errno": {}, "fnmatch": {}, "fractions": {}, "functools": {}, "gc": {},
	"getpass": {}, "gettext": {}, "glob": {}, "gzip": {}, "hashlib": {},
	"heapq": {}, "hmac": {}, "html": {}, "http": {}, "importlib": {},
	"inspect": {}, "io": {}, "ipaddress": {}, "itertools": {}, "json": {},
	"keyword": {}, "linecache": {}, "locale": {}, "logging": {}, "lzma": {},
	"math": {}, "mimetypes": {}, "multiprocessing": {}, "numbers": {},
	"operator": {}, "os": {}, "pathlib": {}, "pickle": {}, "platform": {},
	"pprint": {}, "queue": {}, "random": {}, "re": {}, "secrets": {},
	"select": {}, "shlex": {}, "shutil": {}, "signal": {}, "site": {},
	"socket": {}, "sqlite3": {}, "ssl": {}, "stat": {}, "statistics": {},
	"string": {}, "struct": {}, "subprocess": {}, "sys": {}, "sysconfig": {},
	"tempfile": {}, "textwrap": {}, "threading": {}, "time": {},
	"timeit": {}, "tkinter": {}, "token": {}, "tokenize": {}, "traceback": {},
	"types": {}, "typing": {}, "unicodedata": {}, "unittest": {},
	"urllib": {}, "uuid": {}, "venv": {}, "warnings": {}, "weakref": {},
	"xml": {}, "zipfile": {}, "zlib": {}, "zoneinfo": {},
}

// commonThirdParty is the fallback denylist used when nothing else resolves a
// name: packages so widespread that treating them as internal would corrupt
// most real-world code.
var commonThirdParty = map[string]struct{}{
	"numpy": {}, "torch": {}, "tensorflow": {}, "sklearn": {}, "pandas": {},
	"matplotlib": {}, "scipy": {}, "keras": {}, "cv2": {}, "PIL": {},
	"requests": {}, "flask": {}, "django": {}, "boto3": {}, "pymongo": {},
	"sqlalchemy": {}, "redis": {}, "celery": {}, "click": {}, "typer": {},
	"fastapi": {}, "pydantic": {}, "pytest": {}, "setuptools": {}, "yaml": {},
	"httpx": {}, "aiohttp": {}, "attrs": {}, "rich": {},
}

// LocalModuleResolver classifies absolute imports as external or internal.
//
// Resolution order: caller-configured externals, a site-packages probe when
// directories are configured, the standard-library table, the common
// third-party denylist, and a project-local probe. Anything still ambiguous
// defaults to internal, preferring to rewrite local code over silently
// skipping it.
type LocalModuleResolver struct {
	extra        map[string]struct{}
	sitePackages []string
	projectRoot  string
}

// ResolverOption configures a LocalModuleResolver.
type ResolverOption func(*LocalModuleResolver)

// WithExternalModules marks additional root module names as external.
func WithExternalModules(names []string) ResolverOption {
	return func(r *LocalModuleResolver) {
		for _, n := range names {
			if n != "" {
				r.extra[n] = struct{}{}
			}
		}
	}
}

// WithSitePackages adds directories to probe for installed packages,
// standing in for a live interpreter's import machinery.
func WithSitePackages(dirs []string) ResolverOption {
	return func(r *LocalModuleResolver) {
		r.sitePackages = append(r.sitePackages, dirs...)
	}
}

// NewLocalModuleResolver constructs a resolver rooted at the given project
// directory. projectRoot may be empty, disabling the local probe.
func NewLocalModuleResolver(projectRoot m.Path, opts ...ResolverOption) *LocalModuleResolver {
	r := &LocalModuleResolver{
		extra:       make(map[string]struct{}),
		projectRoot: string(projectRoot),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// IsExternal reports whether the root module resolves to third-party or
// standard-library code.
func (r *LocalModuleResolver) IsExternal(rootModule string) bool {
	if rootModule == "" {
		return false
	}

	if _, ok := r.extra[rootModule]; ok {
		return true
	}

	for _, dir := range r.sitePackages {
		if moduleExistsIn(dir, rootModule) {
			return true
		}
	}

	if _, ok := pythonStdlib[rootModule]; ok {
		return true
	}

	if _, ok := commonThirdParty[rootModule]; ok {
		return true
	}

	if r.projectRoot != "" && moduleExistsIn(r.projectRoot, rootModule) {
		return false
	}

	// Unresolvable but plausibly local: conservative default.
	slog.Debug("module origin ambiguous, defaulting to internal", "module", rootModule)

	return false
}

// moduleExistsIn reports whether dir contains the module as a single-file
// module or a package directory.
func moduleExistsIn(dir, name string) bool {
	if _, err := os.Stat(filepath.Join(dir, name+".py")); err == nil {
		return true
	}

	info, err := os.Stat(filepath.Join(dir, name))

	return err == nil && info.IsDir()
}
