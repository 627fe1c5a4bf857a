package env

// Prefix is the environment variable prefix for all commands
const Prefix = "TCMB"
