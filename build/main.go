// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"github.com/curioswitch/go-build"
	"github.com/curioswitch/go-curiostack/tasks"
	"github.com/goyek/goyek/v3"
	"github.com/goyek/x/boot"
	"github.com/goyek/x/cmd"
)

func main() {
	tasks.DefineServer()

	goyek.Define(goyek.Task{
		Name:  "test-emulator",
		Usage: "runs store tests against the Firestore and Cloud Storage emulators",
		Action: func(a *goyek.A) {
			cmd.Exec(a, "go test ./internal/fitcoachdb/... ./internal/file/...",
				cmd.Env("FIRESTORE_EMULATOR_HOST", "localhost:8080"),
				cmd.Env("STORAGE_EMULATOR_HOST", "localhost:9199"),
			)
		},
	})

	build.DefineTasks()
	boot.Main()
}
