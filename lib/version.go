package lib

// Version will contain esalias build number on build
var Version = "dev"
