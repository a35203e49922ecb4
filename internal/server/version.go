package server

// Version is the gateway server version.
const Version = "0.1.0"

// APIVersion is the version of the tool surface exposed over MCP.
const APIVersion = "0.1.0"
