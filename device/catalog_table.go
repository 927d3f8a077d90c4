package device

// catalog lists every supported part. Columns: name, program size, preserved
// calibration words, preserved config mask, config size, family, panel size,
// write size, program memory type, data size, data memory type, device ID.
//
// Program size counts words for 12/14-bit parts and bytes for the wider
// families. dsPIC sizes count hex-file bytes, four per instruction.
var catalog = []Descriptor{
	// 16x8x
	{"pic16c84", 1024, 0, 0, 1, Family14, 0, 0, EEPROM, 64, EEPROM, NoID},
	{"pic16cr83", 512, 0, 0, 1, Family14, 0, 0, ROM, 64, EEPROM, NoID},
	{"pic16cr84", 1024, 0, 0, 1, Family14, 0, 0, ROM, 64, EEPROM, NoID},
	{"pic16f83", 512, 0, 0, 1, Family14, 0, 0, Flash, 64, EEPROM, NoID},
	{"pic16f84", 1024, 0, 0, 1, Family14, 0, 0, Flash, 64, EEPROM, NoID},
	{"pic16f84a", 1024, 0, 0, 1, Family14, 0, 0, Flash, 64, EEPROM, 0x0560},
	{"pic16f87", 4096, 0, 0, 2, Family14, 0, 0, Flash5, 256, EEPROM, 0x0720},
	{"pic16f88", 4096, 0, 0, 2, Family14, 0, 0, Flash5, 256, EEPROM, 0x0760},
	{"pic16c61", 1024, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c62", 2048, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c62a", 2048, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c62b", 2048, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c63", 4096, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c63a", 4096, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c64", 2048, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c64a", 2048, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c65", 4096, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c65a", 4096, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c65b", 4096, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c66", 8192, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c66a", 8192, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c67", 8192, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16cr62", 2048, 0, 0, 1, Family14, 0, 0, ROM, 0, ROM, NoID},
	{"pic16cr63", 4096, 0, 0, 1, Family14, 0, 0, ROM, 0, ROM, NoID},
	{"pic16cr64", 2048, 0, 0, 1, Family14, 0, 0, ROM, 0, ROM, NoID},
	{"pic16cr65", 4096, 0, 0, 1, Family14, 0, 0, ROM, 0, ROM, NoID},
	{"pic16c620", 512, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c620a", 512, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16cr620a", 512, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c621", 1024, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c621a", 1024, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c622", 2048, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c622a", 2048, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16f627", 1024, 0, 0, 1, Family14, 0, 0, Flash, 128, EEPROM, 0x07a0},
	{"pic16f627a", 1024, 0, 0, 1, Family14, 0, 0, Flash4, 128, EEPROM, 0x1040},
	{"pic16f628", 2048, 0, 0, 1, Family14, 0, 0, Flash, 128, EEPROM, 0x07c0},
	{"pic16f628a", 2048, 0, 0, 1, Family14, 0, 0, Flash4, 128, EEPROM, 0x1060},
	{"pic16f648a", 4096, 0, 0, 1, Family14, 0, 0, Flash4, 128, EEPROM, 0x1100},
	{"pic16f883", 4096, 0, 0, 2, Family14, 0, 0, Flash4, 256, EEPROM, 0x2020},
	{"pic16f884", 4096, 0, 0, 2, Family14, 0, 0, Flash4, 256, EEPROM, 0x2040},
	{"pic16f886", 8192, 0, 0, 2, Family14, 0, 0, Flash4, 256, EEPROM, 0x2060},
	{"pic16f887", 8192, 0, 0, 2, Family14, 0, 0, Flash4, 256, EEPROM, 0x2080},
	{"pic16ce623", 512, 0, 0, 1, Family14, 0, 0, EPROM, 128, EEPROM, NoID},
	{"pic16ce624", 1024, 0, 0, 1, Family14, 0, 0, EPROM, 128, EEPROM, NoID},
	{"pic16ce625", 2048, 0, 0, 1, Family14, 0, 0, EPROM, 128, EEPROM, NoID},
	{"pic16c641", 2048, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c642", 4096, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c661", 2048, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c662", 4096, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c71", 1024, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c710", 512, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c711", 1024, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c712", 1024, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c715", 2048, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c716", 2048, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c717", 2048, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c72", 2048, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c72a", 2048, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16cr72", 2048, 0, 0, 1, Family14, 0, 0, ROM, 0, ROM, NoID},
	{"pic16c73", 4096, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c73a", 4096, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c73b", 4096, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c74", 4096, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c74a", 4096, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c74b", 4096, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c76", 8192, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c77", 8192, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16f72", 4096, 0, 0, 1, Family14, 0, 0, Flash2, 0, ROM, 0x00a0},
	{"pic16f73", 4096, 0, 0, 1, Family14, 0, 0, Flash2, 0, ROM, 0x0600},
	{"pic16f74", 4096, 0, 0, 1, Family14, 0, 0, Flash2, 0, ROM, 0x0620},
	{"pic16f76", 8192, 0, 0, 1, Family14, 0, 0, Flash2, 0, ROM, 0x0640},
	{"pic16f77", 8192, 0, 0, 1, Family14, 0, 0, Flash2, 0, ROM, 0x0660},
	{"pic16f737", 4096, 0, 0, 2, Family14, 0, 0, Flash2, 0, ROM, 0x0ba0},
	{"pic16f747", 4096, 0, 0, 2, Family14, 0, 0, Flash2, 0, ROM, 0x0be0},
	{"pic16f767", 8192, 0, 0, 2, Family14, 0, 0, Flash2, 0, ROM, 0x0ea0},
	{"pic16f777", 8192, 0, 0, 2, Family14, 0, 0, Flash2, 0, ROM, 0x0de0},
	{"pic16c432", 2048, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c433", 2048, 1, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c781", 1024, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c782", 2048, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c745", 8192, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c765", 8192, 0, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic16c770", 2048, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c771", 4096, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c773", 8192, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16c774", 8192, 0, 0, 1, Family14, 0, 0, PROM, 0, ROM, NoID},
	{"pic16f870", 2048, 0, 0, 1, Family14, 0, 0, Flash, 64, EEPROM, 0x0d00},
	{"pic16f871", 2048, 0, 0, 1, Family14, 0, 0, Flash, 64, EEPROM, 0x0d20},
	{"pic16f872", 2048, 0, 0, 1, Family14, 0, 0, Flash, 64, EEPROM, 0x08e0},
	{"pic16f873", 4096, 0, 0, 1, Family14, 0, 0, Flash, 128, EEPROM, 0x0960},
	{"pic16f873a", 4096, 0, 0, 1, Family14, 0, 0, Flash3, 128, EEPROM, 0x0e40},
	{"pic16f874", 4096, 0, 0, 1, Family14, 0, 0, Flash, 128, EEPROM, 0x0920},
	{"pic16f874a", 4096, 0, 0, 1, Family14, 0, 0, Flash3, 128, EEPROM, 0x0e60},
	{"pic16f876", 8192, 0, 0, 1, Family14, 0, 0, Flash, 256, EEPROM, 0x09e0},
	{"pic16f876a", 8192, 0, 0, 1, Family14, 0, 0, Flash3, 256, EEPROM, 0x0e00},
	{"pic16f877", 8192, 0, 0, 1, Family14, 0, 0, Flash, 256, EEPROM, 0x09a0},
	{"pic16f877a", 8192, 0, 0, 1, Family14, 0, 0, Flash3, 256, EEPROM, 0x0e20},
	{"pic16f785", 2048, 0, 0, 1, Family14, 0, 0, Flash4, 256, EEPROM, 0x1200},
	{"pic16hv785", 2048, 0, 0, 1, Family14, 0, 0, Flash4, 256, EEPROM, 0x1220},
	{"pic16f818", 1024, 0, 0, 1, Family14, 0, 0, Flash5, 128, EEPROM, 0x04c0},
	{"pic16f819", 2048, 0, 0, 1, Family14, 0, 0, Flash5, 128, EEPROM, 0x04e0},
	{"pic16c923", 4096, 0, 0, 1, Family14, 0, 0, EPROM, 0, EPROM, NoID},
	{"pic16c924", 4096, 0, 0, 1, Family14, 0, 0, EPROM, 0, EPROM, NoID},
	{"pic16f630", 1024, 1, 0x3000, 1, Family14, 0, 0, Flash4, 128, EEPROM, 0x10c0},
	{"pic16f676", 1024, 1, 0x3000, 1, Family14, 0, 0, Flash4, 128, EEPROM, 0x10e0},

	// 12-bit
	{"pic12c508", 512, 1, 0, 1, Family12, 0, 0, EPROM, 0, ROM, NoID},
	{"pic12c508a", 512, 1, 0, 1, Family12, 0, 0, EPROM, 0, ROM, NoID},
	{"pic12f508", 512, 1, 0, 1, Family12, 0, 0, Flash2, 0, ROM, NoID},
	{"pic12ce518", 512, 0, 0, 1, Family12, 0, 0, EPROM, 16, EEPROM, NoID},
	{"pic12c509", 1024, 1, 0, 1, Family12, 0, 0, EPROM, 0, ROM, NoID},
	{"pic12c509a", 1024, 0, 0, 1, Family12, 0, 0, EPROM, 0, ROM, NoID},
	{"pic12f509", 1024, 1, 0, 1, Family12, 0, 0, Flash2, 0, ROM, NoID},
	{"pic12ce519", 1024, 0, 0, 1, Family12, 0, 0, EPROM, 16, EEPROM, NoID},
	{"pic12cr509a", 1024, 0, 0, 1, Family12, 0, 0, ROM, 0, ROM, NoID},
	{"pic12c671", 1024, 1, 0, 1, Family14, 0, 0, EPROM, 0, ROM, 0x0500},
	{"pic12c672", 2048, 1, 0, 1, Family14, 0, 0, EPROM, 0, ROM, NoID},
	{"pic12ce673", 1024, 1, 0, 1, Family14, 0, 0, EPROM, 16, EEPROM, NoID},
	{"pic12ce674", 2048, 1, 0, 1, Family14, 0, 0, EPROM, 16, EEPROM, NoID},
	{"pic16c505", 1024, 1, 0, 1, Family12, 0, 0, EPROM, 0, ROM, NoID},
	{"pic12f629", 1024, 1, 0x3000, 1, Family14, 0, 0, Flash4, 128, EEPROM, 0x0f80},
	{"pic12f675", 1024, 1, 0x3000, 1, Family14, 0, 0, Flash4, 128, EEPROM, 0x0fc0},
	{"pic12f635", 1024, 0, 0, 3, Family14, 0, 0, Flash4, 128, EEPROM, 0x0fa0},
	{"pic12f683", 2048, 0, 0, 3, Family14, 0, 0, Flash4, 256, EEPROM, 0x0460},
	{"pic16f631", 1024, 0, 0, 2, Family14, 0, 0, Flash4, 128, EEPROM, 0x1420},
	{"pic16f636", 2048, 0, 0, 3, Family14, 0, 0, Flash4, 256, EEPROM, 0x10a0},
	{"pic16f639", 2048, 0, 0, 3, Family14, 0, 0, Flash4, 256, EEPROM, 0x10a0},
	{"pic16f677", 2048, 0, 0, 2, Family14, 0, 0, Flash4, 256, EEPROM, 0x1440},
	{"pic16f684", 2048, 0, 0, 3, Family14, 0, 0, Flash4, 256, EEPROM, 0x1080},
	{"pic16f685", 4096, 0, 0, 2, Family14, 0, 0, Flash4, 256, EEPROM, 0x04a0},
	{"pic16f687", 2048, 0, 0, 2, Family14, 0, 0, Flash4, 256, EEPROM, 0x1320},
	{"pic16f688", 4096, 0, 0, 2, Family14, 0, 0, Flash4, 256, EEPROM, 0x1180},
	{"pic16f689", 4096, 0, 0, 2, Family14, 0, 0, Flash4, 256, EEPROM, 0x1340},
	{"pic16f690", 4096, 0, 0, 2, Family14, 0, 0, Flash4, 256, EEPROM, 0x1400},

	// 18F, multi-panel writes
	{"pic18f242", 16 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x0480},
	{"pic18f248", 16 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x0800},
	{"pic18f252", 32 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x0400},
	{"pic18f258", 32 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x0840},
	{"pic18f442", 16 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x04a0},
	{"pic18f448", 16 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x0820},
	{"pic18f452", 32 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x0420},
	{"pic18f458", 32 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x0860},
	{"pic18f1220", 4 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x07e0},
	{"pic18f2220", 4 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x0580},
	{"pic18f4220", 4 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x05a0},
	{"pic18f1320", 8 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x07c0},
	{"pic18f2320", 8 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x0500},
	{"pic18f4320", 8 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x0520},
	{"pic18f6520", 32 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 1024, EEPROM, 0x0b20},
	{"pic18f6620", 64 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 1024, EEPROM, 0x0660},
	{"pic18f6720", 128 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 1024, EEPROM, 0x0620},
	{"pic18f8520", 32 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 1024, EEPROM, 0x0b00},
	{"pic18f8620", 64 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 1024, EEPROM, 0x0640},
	{"pic18f8720", 128 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 1024, EEPROM, 0x0600},
	{"pic18f6585", 48 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 1024, EEPROM, 0x0a60},
	{"pic18f8585", 48 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 1024, EEPROM, 0x0a20},
	{"pic18f6680", 64 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 1024, EEPROM, 0x0a40},
	{"pic18f8680", 64 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 1024, EEPROM, 0x0a00},
	{"pic18f6525", 48 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 1024, EEPROM, 0x0ae0},
	{"pic18f6621", 64 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 1024, EEPROM, 0x0aa0},
	{"pic18f8525", 48 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 1024, EEPROM, 0x0ac0},
	{"pic18f8621", 64 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 1024, EEPROM, 0x0a80},
	{"pic18f2439", 12 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x0480},
	{"pic18f2539", 24 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x0400},
	{"pic18f4439", 12 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x04a0},
	{"pic18f4539", 24 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x0420},
	{"pic18f2331", 8 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x08e0},
	{"pic18f2431", 16 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x08c0},
	{"pic18f4331", 8 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x08a0},
	{"pic18f4431", 16 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, Flash18, 256, EEPROM, 0x0880},

	// 18F, single panel
	{"pic18f2221", 4 * 1024, 0, 0, 14, Family16, 0, 8, Flash18, 256, EEPROM, 0x2160},
	{"pic18f2321", 8 * 1024, 0, 0, 14, Family16, 0, 8, Flash18, 256, EEPROM, 0x2120},
	{"pic18f2410", 16 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 0, EEPROM, 0x1160},
	{"pic18f2423", 16 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x1150},
	{"pic18f2420", 16 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x1140},
	{"pic18f2450", 16 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 0, EEPROM, 0x2420},
	{"pic18f2455", 24 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x1260},
	{"pic18f2458", 24 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x2a60},
	{"pic18f2480", 16 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x1ae0},
	{"pic18f2510", 32 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 0, EEPROM, 0x1120},
	{"pic18f2515", 48 * 1024, 0, 0, 14, Family16, 0, 64, Flash18, 0, EEPROM, 0x0ce0},
	{"pic18f2523", 32 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x1110},
	{"pic18f2520", 32 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x1100},
	{"pic18f2525", 48 * 1024, 0, 0, 14, Family16, 0, 64, Flash18, 1024, EEPROM, 0x0cc0},
	{"pic18f2550", 32 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x1240},
	{"pic18f2553", 32 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x2a40},
	{"pic18f2580", 32 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x1ac0},
	{"pic18f2585", 48 * 1024, 0, 0, 14, Family16, 0, 64, Flash18, 1024, EEPROM, 0x0ee0},
	{"pic18f2610", 64 * 1024, 0, 0, 14, Family16, 0, 64, Flash18, 0, EEPROM, 0x0ca0},
	{"pic18f2620", 64 * 1024, 0, 0, 14, Family16, 0, 64, Flash18, 1024, EEPROM, 0x0c80},
	{"pic18f2680", 64 * 1024, 0, 0, 14, Family16, 0, 64, Flash18, 1024, EEPROM, 0x0ec0},
	{"pic18f2682", 80 * 1024, 0, 0, 14, Family16, 0, 64, Flash18, 1024, EEPROM, 0x2700},
	{"pic18f2685", 96 * 1024, 0, 0, 14, Family16, 0, 64, Flash18, 1024, EEPROM, 0x2720},
	{"pic18f4221", 4 * 1024, 0, 0, 14, Family16, 0, 8, Flash18, 256, EEPROM, 0x2140},
	{"pic18f4321", 8 * 1024, 0, 0, 14, Family16, 0, 8, Flash18, 256, EEPROM, 0x2100},
	{"pic18f4410", 16 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 0, EEPROM, 0x10e0},
	{"pic18f4423", 16 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x10d0},
	{"pic18f4420", 16 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x10c0},
	{"pic18f4450", 16 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 0, EEPROM, 0x2400},
	{"pic18f4455", 24 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x1220},
	{"pic18f4458", 24 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x2a20},
	{"pic18f4480", 16 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x1aa0},
	{"pic18f4510", 32 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 0, EEPROM, 0x10a0},
	{"pic18f4515", 48 * 1024, 0, 0, 14, Family16, 0, 64, Flash18, 0, EEPROM, 0x0c60},
	{"pic18f4523", 32 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x1090},
	{"pic18f4520", 32 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x1080},
	{"pic18f4525", 48 * 1024, 0, 0, 14, Family16, 0, 64, Flash18, 1024, EEPROM, 0x0c40},
	{"pic18f4550", 32 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x1200},
	{"pic18f4553", 32 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x2a00},
	{"pic18f4580", 32 * 1024, 0, 0, 14, Family16, 0, 32, Flash18, 256, EEPROM, 0x1a80},
	{"pic18f4585", 48 * 1024, 0, 0, 14, Family16, 0, 64, Flash18, 1024, EEPROM, 0x0ea0},
	{"pic18f4610", 64 * 1024, 0, 0, 14, Family16, 0, 64, Flash18, 0, EEPROM, 0x0c20},
	{"pic18f4620", 64 * 1024, 0, 0, 14, Family16, 0, 64, Flash18, 1024, EEPROM, 0x0c00},
	{"pic18f4680", 64 * 1024, 0, 0, 14, Family16, 0, 64, Flash18, 1024, EEPROM, 0x0e80},
	{"pic18f4682", 80 * 1024, 0, 0, 14, Family16, 0, 64, Flash18, 1024, EEPROM, 0x2740},
	{"pic18f4685", 96 * 1024, 0, 0, 14, Family16, 0, 64, Flash18, 1024, EEPROM, 0x2760},

	// 18C OTP
	{"pic18c242", 16 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, EPROM18, 0, ROM, NoID},
	{"pic18c252", 32 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, EPROM18, 0, ROM, NoID},
	{"pic18c442", 16 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, EPROM18, 0, ROM, NoID},
	{"pic18c452", 32 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, EPROM18, 0, ROM, NoID},
	{"pic18c658", 32 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, EPROM18, 0, ROM, NoID},
	{"pic18c858", 32 * 1024, 0, 0, 14, Family16, 8 * 1024, 8, EPROM18, 0, ROM, NoID},

	// dsPIC30
	{"dspic30f2010", 4 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 1024, EEPROM, 0x0040},
	{"dspic30f2011", 4 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 0, ROM, 0x00c0},
	{"dspic30f2012", 4 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 0, ROM, 0x00c2},
	{"dspic30f3010", 8 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 1024, EEPROM, NoID},
	{"dspic30f3011", 8 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 1024, EEPROM, NoID},
	{"dspic30f3012", 8 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 1024, EEPROM, 0x00c1},
	{"dspic30f3013", 8 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 1024, EEPROM, 0x00c3},
	{"dspic30f3014", 8 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 1024, EEPROM, 0x0140},
	{"dspic30f4011", 16 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 1024, EEPROM, 0x0101},
	{"dspic30f4012", 16 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 1024, EEPROM, 0x0100},
	{"dspic30f4013", 16 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 1024, EEPROM, 0x0141},
	{"dspic30f5011", 22 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 1024, EEPROM, 0x0080},
	{"dspic30f5013", 22 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 1024, EEPROM, 0x0081},
	{"dspic30f5015", 22 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 1024, EEPROM, NoID},
	{"dspic30f6010", 48 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 4096, EEPROM, 0x0188},
	{"dspic30f6011", 44 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 2048, EEPROM, 0x0192},
	{"dspic30f6012", 48 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 4096, EEPROM, 0x0193},
	{"dspic30f6013", 44 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 2048, EEPROM, 0x0197},
	{"dspic30f6014", 48 * 4096, 0, 0, 16, Family24, 0, 0, Flash30, 4096, EEPROM, 0x0198},
}
