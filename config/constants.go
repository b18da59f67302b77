package config

const AppName = "box-editor"
const DefaultConfigFileName = "config.toml"

const DefaultLogLevel = "info"
