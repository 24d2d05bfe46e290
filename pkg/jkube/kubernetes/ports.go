/*
Copyright 2024 The Skaffold Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package kubernetes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/docker/go-connections/nat"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
)

// wellKnownPorts maps ports to the service names registered with IANA, plus the names jkube prefers
// for common Java ports.
var wellKnownPorts = map[int32]string{
	21:    "ftp",
	22:    "ssh",
	23:    "telnet",
	25:    "smtp",
	53:    "domain",
	80:    "http",
	110:   "pop3",
	143:   "imap",
	389:   "ldap",
	443:   "https",
	465:   "smtps",
	636:   "ldaps",
	993:   "imaps",
	995:   "pop3s",
	1433:  "ms-sql-s",
	1521:  "ncube-lm",
	2181:  "eforward",
	3306:  "mysql",
	5000:  "commplex-main",
	5432:  "postgresql",
	5672:  "amqp",
	6379:  "redis",
	8080:  "http",
	8081:  "sunproxyadmin",
	8443:  "https",
	8778:  "jolokia",
	9779:  "prometheus",
	11211: "memcache",
	27017: "mongodb",
}

// PortName returns the well known service name of a port.
func PortName(port int32) (string, bool) {
	name, ok := wellKnownPorts[port]
	return name, ok
}

// ParseServicePort parses "port", "port:targetPort" or either with a "/protocol" suffix.
func ParseServicePort(spec string) (corev1.ServicePort, error) {
	proto, ports := nat.SplitProtoPort(strings.TrimSpace(spec))
	parts := strings.Split(ports, ":")
	if len(parts) > 2 {
		return corev1.ServicePort{}, invalidPort(spec)
	}
	port, err := parsePortNumber(parts[0])
	if err != nil {
		return corev1.ServicePort{}, invalidPort(spec)
	}
	target := port
	if len(parts) == 2 {
		if target, err = parsePortNumber(parts[1]); err != nil {
			return corev1.ServicePort{}, invalidPort(spec)
		}
	}
	protocol, err := Protocol(proto)
	if err != nil {
		return corev1.ServicePort{}, err
	}
	sp := corev1.ServicePort{
		Port:       port,
		TargetPort: intstr.FromInt32(target),
		Protocol:   protocol,
	}
	sp.Name, _ = PortName(port)
	return sp, nil
}

// Protocol maps tcp, udp and sctp to the Kubernetes protocol.
func Protocol(proto string) (corev1.Protocol, error) {
	switch strings.ToLower(proto) {
	case "", "tcp":
		return corev1.ProtocolTCP, nil
	case "udp":
		return corev1.ProtocolUDP, nil
	case "sctp":
		return corev1.ProtocolSCTP, nil
	}
	return "", jkerrors.ConfigError(jkerrors.ConfigInvalidPort, "invalid protocol %q, must be one of tcp, udp or sctp", proto)
}

func parsePortNumber(s string) (int32, error) {
	if _, err := nat.ParsePort(s); err != nil || s == "" {
		return 0, fmt.Errorf("invalid port %q", s)
	}
	p, err := strconv.ParseInt(s, 10, 32)
	if err != nil || p == 0 {
		return 0, fmt.Errorf("invalid port %q", s)
	}
	return int32(p), nil
}

func invalidPort(spec string) error {
	return jkerrors.ConfigError(jkerrors.ConfigInvalidPort, "invalid port specification %q", spec)
}
