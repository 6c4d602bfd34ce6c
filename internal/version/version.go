package version

// Version is the formkit CLI version.
const Version = "0.1.0"
