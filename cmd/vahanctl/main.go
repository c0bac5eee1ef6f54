package main

import (
	"vahan-dashboard/cmd/vahanctl/commands"
	"vahan-dashboard/lib/serviceutil"
	"vahan-dashboard/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "vahanctl")
	telemetry.InitSlog(true)
	commands.ExecuteContext(ctx)
}
