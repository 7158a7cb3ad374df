/*
Package desktop owns the per-shell overlay state.

A Desktop composes one window registry, one modal gate and one gesture
tracker. The core types assume a single event loop; Desktop serialises
every command behind a mutex so HTTP handlers and WebSocket readers can
share it. Each effective command bumps the desktop revision and publishes a
snapshot to subscribers.

Manager creates desktops with ULID identifiers, looks them up for the API
layer and evicts desktops that have been idle longer than the configured TTL.
*/
package desktop
