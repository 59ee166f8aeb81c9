package api

// DefaultBaseURL is the production Kalpyotish API.
const DefaultBaseURL = "https://kalpyotish.onrender.com"
