package testutil

// Sample command output captured from VyOS 1.3 routers, trimmed to what the
// parsers read.

const ShowInterfaces = `Codes: S - State, L - Link, u - Up, D - Down, A - Admin Down
Interface        IP Address                        S/L  Description
---------        ----------                        ---  -----------
eth0             192.168.1.1/24                    u/u  Management
eth1             10.0.0.1/30                       u/D  uplink to core
                 2001:db8::1/64
eth2             -                                 A/D
lo               127.0.0.1/8                       u/u
                 ::1/128
`

const ShowConfiguration = `interfaces {
    ethernet eth0 {
        address 192.168.1.1/24
        description Management
        hw-id 00:50:56:86:8c:26
        speed auto
    }
    ethernet eth1 {
        address 10.0.0.1/30
        address 2001:db8::1/64
        description "uplink to core"
        hw-id 00:50:56:86:8c:27
        mtu 9000
        speed 1000
    }
    ethernet eth2 {
        disable
    }
    loopback lo {
    }
}
protocols {
    bgp 64520 {
        neighbor 192.168.1.1 {
            remote-as 64519
        }
    }
}
service {
    snmp {
        community private {
            authorization rw
        }
        community public {
            authorization ro
        }
        contact noc@example.net
        location "rack 4"
    }
    ssh {
        port 22
    }
}
system {
    domain-name example.net
    host-name vyos-edge1
    login {
        user vyos {
            authentication {
                encrypted-password ****************
            }
        }
    }
    ntp {
        server 0.pool.ntp.org {
        }
    }
}
`

// ShowConfigurationNoSNMP is ShowConfiguration without the snmp service.
const ShowConfigurationNoSNMP = `interfaces {
    ethernet eth0 {
        hw-id 00:50:56:86:8c:26
    }
}
service {
    ssh {
        port 22
    }
}
system {
    host-name vyos-edge2
}
`

const ShowConfigurationCommands = `set interfaces ethernet eth0 address '192.168.1.1/24'
set system host-name 'vyos-edge1'
set system login user vyos authentication encrypted-password '$6$vyos$hash'
set system login user vyos authentication plaintext-password ''
set system login user vyos level 'admin'
set system login user alice authentication encrypted-password '$6$alice$hash'
set system login user alice authentication public-keys alice@laptop key 'AAAAB3NzaC1yc2E'
set system login user alice authentication public-keys alice@laptop type 'ssh-rsa'
set system login user alice level 'operator'
`

const ShowVersion = `Version:          VyOS 1.3.2
Release train:    equuleus

Built by:         Sentrium S.L.
Built on:         Wed 10 Aug 2022 11:29 UTC
Build UUID:       7fba0c1a-5a05-4ad9-9e92-7a7b0d7d4c2c

Architecture:     x86_64
Boot via:         installed image
System type:      KVM guest

Hardware vendor:  QEMU
Hardware model:   Standard PC (i440FX + PIIX, 1996)
Hardware S/N:     VM-4711
Hardware UUID:    0f2c4b5e-0000-0000-0000-000000000000

Copyright:        VyOS maintainers and contributors
`

const ShowVersionHelium = `Version:      VyOS 1.1.8
Description:  VyOS 1.1.8 (helium)
Copyright:    2017 VyOS maintainers and contributors
Built by:     maintainers@vyos.net
Built on:     Sat Nov 11 13:44:36 UTC 2017
System type:  x86 64-bit
Boot via:     image
Hypervisor:   VMware
HW model:     VMware Virtual Platform
HW S/N:       VMware-42 1d 83 b9
HW UUID:      421D83B9-FEC4-382C-6A11-F8D477435EA9
`

const ProcUptime = "81234.56\n"

const ShowARP = `Address                  HWtype  HWaddress           Flags Mask            Iface
10.129.2.254             ether   00:50:56:97:af:b1   C                     eth0
192.168.1.134                    (incomplete)                              eth1
192.168.1.1              ether   00:50:56:ba:26:7f   C                     eth1
`

const NTPQ = `     remote           refid      st t when poll reach   delay   offset  jitter
==============================================================================
*116.91.118.97   133.243.238.244  2 u   51   64  377    5.436  987971. 1694.82
+219.117.210.137 .GPS.            1 u   17   64  377   17.586  988068. 1652.00
 133.130.120.204 133.243.238.164  2 u   2m   64  377    7.717  987996. 1669.77
 10.0.0.5        .INIT.          16 u    -   64    0    0.000    0.000   0.000
`

const VMStat = `procs -----------memory---------- ---swap-- -----io---- -system-- ------cpu-----
 r  b   swpd   free   buff  cache   si   so    bi    bo   in   cs us sy id wa st
 0  0      0  61404 139624 139360    0    0     0     0    9   14  3  2 95  0  0
`

const Free = `              total        used        free      shared  buff/cache   available
Mem:         508156      446784       61372           0      139624      340356
Swap:             0           0           0
`

const ShowBGPSummary = `IPv4 Unicast Summary:
BGP router identifier 192.168.1.2, local AS number 64520 vrf-id 0
BGP table version 3
RIB entries 3, using 576 bytes of memory
Peers 4, using 82 KiB of memory

Neighbor        V         AS MsgRcvd MsgSent   TblVer  InQ OutQ  Up/Down State/PfxRcd
192.168.1.1     4      64519    7226    7189        0    0    0 4d23h40m            1
192.168.1.3     4      64521    7132    7103        0    0    0 01:02:03            0
192.168.1.4     4      64522       0       0        0    0    0    never       Active
192.168.1.5     4      64523       0       0        0    0    0    never Idle (Admin)

Total number of neighbors 4
`

const ShowBGPNeighborEstablished = `BGP neighbor is 192.168.1.1, remote AS 64519, local AS 64520, external link
 Description: upstream-a
  BGP version 4, remote router ID 192.168.1.1, local router ID 192.168.1.2
  BGP state = Established, up for 4d23h40m
  Last read 00:00:01, Last write 00:00:30
  Hold time is 90, keepalive interval is 30 seconds
  Configured hold time is 180, keepalive interval is 60 seconds
  Neighbor capabilities:
    4 Byte AS: advertised and received
    Route refresh: advertised and received(old & new)
    Address Family IPv4 Unicast: advertised and received
  Message statistics:
    Inq depth is 0
    Outq depth is 2
                         Sent       Rcvd
    Opens:                  1          1
    Updates:                7         10
    Keepalives:          7180          5
    Notifications:          0          0
    Route Refresh:          0          0
    Capability:             0          0
    Total:               7188         16
  Minimum time between advertisement runs is 0 seconds

 For address family: IPv4 Unicast
  Update group 1, subgroup 1
  Packet version 3
  Private AS numbers removed in updates to this neighbor
  Community attribute sent to this neighbor(all)
  1 accepted prefixes

 For address family: IPv6 Unicast
  Update group 2, subgroup 2
  2 accepted prefixes

  Connections established 3; dropped 2
  Last reset 4d23h41m,  Waiting for NHT
Local host: 192.168.1.2, Local port: 179
Foreign host: 192.168.1.1, Foreign port: 41234
Nexthop: 192.168.1.2
Nexthop global: fe80::250:56ff:fe86:8c26
BGP connection: shared network
`

const ShowBGPNeighborActive = `BGP neighbor is 192.168.1.4, remote AS 64522, local AS 64520, external link
  BGP version 4, remote router ID 0.0.0.0, local router ID 192.168.1.2
  BGP state = Active
  Last read 00:10:00, Last write never
  Hold time is 180, keepalive interval is 60 seconds
  Message statistics:
    Inq depth is 0
    Outq depth is 0
                         Sent       Rcvd
    Opens:                  0          0
    Notifications:          0          0
    Updates:                0          0
    Keepalives:             0          0
    Route Refresh:          0          0
    Capability:             0          0
    Total:                  0          0
  Minimum time between advertisement runs is 0 seconds

 For address family: IPv4 Unicast
  Not part of any update group
  0 accepted prefixes

  Connections established 0; dropped 0
  Last reset never
Next connect timer due in 17 seconds
`

const ShowLLDPNeighborsDetail = `-------------------------------------------------------------------------------
LLDP neighbors:
-------------------------------------------------------------------------------
Interface:    eth0, via: LLDP, RID: 1, Time: 0 day, 00:10:41
  Chassis:
    ChassisID:    mac 00:50:56:aa:bb:cc
    SysName:      switch1.example.net
    SysDescr:     Arista Networks EOS
    Capability:   Bridge, on
  Port:
    PortID:       ifname Ethernet1
    PortDescr:    to-vyos
    TTL:          120
-------------------------------------------------------------------------------
Interface:    eth1, via: LLDP, RID: 2, Time: 0 day, 00:05:12
  Chassis:
    ChassisID:    mac 00:50:56:dd:ee:ff
    SysName:      core1
  Port:
    PortID:       mac 00:50:56:dd:ee:01
    PortDescr:    xe-0/0/1
-------------------------------------------------------------------------------
Interface:    eth1, via: LLDP, RID: 3, Time: 0 day, 00:01:00
  Chassis:
    ChassisID:    mac 00:50:56:00:00:02
    SysName:      core2
  Port:
    PortID:       ifname xe-0/0/2
-------------------------------------------------------------------------------
`

const ShowInterfacesDetail = `eth0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc pfifo_fast state UP group default qlen 1000
    link/ether 00:50:56:86:8c:26 brd ff:ff:ff:ff:ff:ff
    inet 192.168.1.1/24 brd 192.168.1.255 scope global eth0
       valid_lft forever preferred_lft forever
    Description: Management

    RX:  bytes    packets     errors    dropped    overrun      mcast
      35960043     464584          0        221          0        407
    TX:  bytes    packets     errors    dropped    carrier collisions
      32776498     279273          0          0          0          0

eth1: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 9000 qdisc pfifo_fast state UP group default qlen 1000
    link/ether 00:50:56:86:8c:27 brd ff:ff:ff:ff:ff:ff

    RX:  bytes    packets     errors    dropped    overrun      mcast
        123456       1000          1          2          0          3
    TX:  bytes    packets     errors    dropped    carrier collisions
        654321       2000          4          5          0          0
`

const PingOK = `PING 192.0.2.1 (192.0.2.1) 100(128) bytes of data.
108 bytes from 192.0.2.1: icmp_seq=1 ttl=64 time=0.307 ms
108 bytes from 192.0.2.1: icmp_seq=2 ttl=64 time=0.480 ms

--- 192.0.2.1 ping statistics ---
5 packets transmitted, 4 received, 20% packet loss, time 3997ms
rtt min/avg/max/mdev = 0.307/0.396/0.480/0.061 ms
`

const PingUnknownHost = "ping: Unknown host nosuchhost\n"
