/*
Package ports defines the driven ports (interfaces) of the behave workspace.

These interfaces decouple script handling from where scripts are kept, so the
same Workspace works against a directory, memory or Redis.

# Key Interfaces

  - ScriptStore: reads and writes whole script files by base name.
  - Watchable: notifies about scripts changed behind the workspace's back.
  - Locker: serializes stub merges of one behaviour across callers.

Reusable contract suites for adapters live in the tests subpackage.
*/
package ports
