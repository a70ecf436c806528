// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

/*
Package prompts provides user interaction primitives following UNIX conventions.

# Mode Detection

Non-interactive mode is enabled when ANY of these is true:

  - --non-interactive was passed, or non-interactive is set in ~/.wasm-deploy/cli.json
  - WASM_DEPLOY_NON_INTERACTIVE=1/true/yes/on environment variable
  - CI=1/true environment variable (GitHub Actions, GitLab CI, etc.)
  - stdin is not a TTY (piped/redirected/scripted)

# Option Precedence

 1. Flags (--rpc=http://localhost:26657)
 2. Environment variables (WASM_DEPLOY_*)
 3. Config file (~/.wasm-deploy/cli.json)
 4. Defaults
 5. Prompts (only if interactive/TTY)

Prompts should only fill values that remain empty after 1-4. Use Validator to
collect what is missing:

	v := prompts.NewValidator("wasm-deploy chain add")
	v.Require(&rpc, prompts.MissingOpt{Flag: "--rpc", Prompt: "RPC endpoint"})
	if err := v.Resolve(func(m prompts.MissingOpt) (string, error) {
	    return app.Prompt.CaptureURL(m.Prompt)
	}); err != nil {
	    return err
	}

When non-interactive and required values are missing, errors look like:

	missing required options:
	  --rpc

	run 'wasm-deploy chain add --help' to see all options
*/
package prompts
