// Package headless is an in-process host for tests, tools and the CLI.
//
// Time only moves when Advance is called and frames only run when Step is
// called, so a run is fully deterministic. Input is injected as raw host
// events through Target, drawing is recorded by Surface and audio voices are
// tracked by Device without producing sound.
package headless
