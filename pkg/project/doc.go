// Package project resolves the files and directories a migration index works
// with.
//
// A Project is rooted at a Laravel project directory and configured with a
// config.Config. It discovers the migration files of every configured
// migration type, resolves the output directory, and manages the files placed
// next to the generated reports.
//
// # Discovery
//
// Each migration type names a directory relative to the project root. Files
// are selected with doublestar include patterns (default "*.php", which does
// not descend into subdirectories) and filtered with exclude patterns. Both
// are matched against paths relative to the type directory:
//
//	migration_types:
//	  tenant:
//	    path: database/migrations/tenant
//	    include: ["**/*.php"]
//	    exclude: ["archive/**"]
//
// Discovered files are returned in lexicographical order as analyzer.Input
// values labeled with the type name and carrying a path relative to the
// project root.
//
// # Output Directory
//
// Refresh removes the output directory so stale reports never survive a
// rebuild. InstallSkill copies the SKILL.md template into the output
// directory unless one is already present, using the configured template or
// the one embedded in this package.
//
// # Usage Example
//
//	proj := project.New(project.ProjectParams{
//		Dir:    "/path/to/laravel/app",
//		Config: config.Default(),
//	})
//
//	mt, _ := proj.Config().Type("default")
//	inputs, err := proj.Discover(mt)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, in := range inputs {
//		fmt.Println(in.RelativePath)
//	}
package project
