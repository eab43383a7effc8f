// Package environment carries the deployment stage through request
// contexts. The beacon proxy parses APP_ENV once, installs Middleware at the
// router root and lets handlers branch on IsProduction.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	r.Use(environment.Middleware(env))
package environment
