/*
Package security provides transport security for sepulcherd: TLS
termination for the HTTP server, kept deliberately narrow since this
service has no credential or secret store of its own.

# TLS configuration

	cfg := &tls.Config{
		Enabled:  true,
		CertFile: "/etc/sepulcher/certs/server.crt",
		KeyFile:  "/etc/sepulcher/certs/server.key",
	}

	tlsConfig, err := cfg.ToTLSConfig()
	if err != nil {
		log.Fatal(err)
	}
*/
package security
