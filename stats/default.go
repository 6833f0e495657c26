package stats

// defaultArsenal is the built-in weapon set, loadable without any file on
// disk. Hosts with their own balance data use Load/LoadFile instead.
const defaultArsenal = `

# === Direct fire ===

[weapons.mg]
movement = "direct"
class = "kinetic"
subclass = "machine-gun"
effect = "anti-personnel"
flight-speed = 1200
distance-extension = 120
targets = "both"

[weapons.mg.level]
max-range = 1280
short-range = 512
damage = 12
minimum-damage = 33

[weapons.cannon]
movement = "direct"
class = "kinetic"
subclass = "cannon"
effect = "anti-tank"
flight-speed = 1000
distance-extension = 120

[weapons.cannon.level]
max-range = 1408
short-range = 640
damage = 40
minimum-damage = 33

[weapons.rail]
movement = "direct"
class = "kinetic"
subclass = "rail"
effect = "anti-tank"
flight-speed = 1600
distance-extension = 120
penetrate = true

[weapons.rail.level]
max-range = 1664
short-range = 768
damage = 90
minimum-damage = 33

[weapons.flamer]
movement = "direct"
class = "heat"
subclass = "flame"
effect = "flamer"
flight-speed = 600
distance-extension = 110

[weapons.flamer.level]
max-range = 512
short-range = 256
damage = 25
minimum-damage = 50
periodical-damage = 40
periodical-damage-radius = 128
periodical-damage-time = 8000

# === Indirect fire ===

[weapons.mortar]
movement = "indirect"
class = "kinetic"
subclass = "mortar"
effect = "artillery-round"
flight-speed = 550
distance-extension = 150
radius-life = 500

[weapons.mortar.level]
max-range = 2560
min-range = 384
damage = 50
rad-damage = 30
radius = 256
minimum-damage = 33

[weapons.howitzer]
movement = "indirect"
class = "kinetic"
subclass = "howitzer"
effect = "artillery-round"
flight-speed = 565
distance-extension = 150
radius-life = 800

[weapons.howitzer.level]
max-range = 3584
min-range = 512
damage = 80
rad-damage = 50
radius = 384
minimum-damage = 33

# === Homing ===

[weapons.lancer]
movement = "homing-direct"
class = "kinetic"
subclass = "missile"
effect = "anti-tank"
flight-speed = 900
distance-extension = 150
targets = "both"

[weapons.lancer.level]
max-range = 1664
short-range = 768
damage = 100
minimum-damage = 33

[weapons.archangel]
movement = "homing-indirect"
class = "kinetic"
subclass = "missile"
effect = "artillery-round"
flight-speed = 800
distance-extension = 200
radius-life = 600

[weapons.archangel.level]
max-range = 4096
min-range = 768
damage = 150
rad-damage = 70
radius = 384
minimum-damage = 33

# === Special ===

[weapons.emp-cannon]
movement = "direct"
class = "heat"
subclass = "emp"
effect = "anti-personnel"
flight-speed = 1000
distance-extension = 120
no-friendly-fire = true
radius-life = 100

[weapons.emp-cannon.level]
max-range = 1280
short-range = 512
damage = 1
rad-damage = 1
radius = 256
emp-radius = 384
minimum-damage = 100

[weapons.nexus]
movement = "direct"
class = "heat"
subclass = "electronic"
effect = "anti-personnel"
flight-speed = 1400
distance-extension = 110

[weapons.nexus.level]
max-range = 1024
damage = 30
minimum-damage = 100

[weapons.lassat]
movement = "direct"
class = "heat"
subclass = "las-sat"
effect = "bunker-buster"
flight-speed = 2000
distance-extension = 100
radius-life = 200

[weapons.lassat.level]
max-range = 30000
damage = 1200
rad-damage = 400
radius = 512
minimum-damage = 100
`
